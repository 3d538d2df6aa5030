// internal/bench/measure_test.go
package bench

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestMeasure(t *testing.T) {
	var sample atomic.Int64
	sample.Store(100)

	prev := currentMemoryUsage
	currentMemoryUsage = func() int64 { return sample.Load() }
	t.Cleanup(func() { currentMemoryUsage = prev })

	elapsed, peak, timeline := Measure(func() {
		sample.Store(300)
		time.Sleep(30 * time.Millisecond)
		sample.Store(200)
	}, 5*time.Millisecond)

	if elapsed <= 0 {
		t.Fatalf("elapsed = %v, want > 0", elapsed)
	}
	if len(timeline) < 2 {
		t.Fatalf("timeline too short: %v", timeline)
	}
	if timeline[0] != 100 {
		t.Fatalf("baseline sample = %d, want 100", timeline[0])
	}
	if peak != 200 {
		t.Fatalf("effective peak = %d, want 200 (300 above 100 baseline)", peak)
	}
}

func TestMeasureQuietWorkload(t *testing.T) {
	prev := currentMemoryUsage
	currentMemoryUsage = func() int64 { return 50 }
	t.Cleanup(func() { currentMemoryUsage = prev })

	_, peak, timeline := Measure(func() {}, time.Millisecond)

	if peak != 0 {
		t.Fatalf("peak = %d, want 0 for flat memory", peak)
	}
	if timeline[0] != 50 {
		t.Fatalf("baseline = %d, want 50", timeline[0])
	}
}
