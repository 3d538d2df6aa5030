// internal/aggregate/throughput_test.go
package aggregate

import (
	"reflect"
	"testing"

	"github.com/genbench/genbench/internal/record"
)

func TestAggregateThroughputEmpty(t *testing.T) {
	t.Parallel()

	got := AggregateThroughput(nil, DefaultTargetGrid())
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestAggregateThroughputSingleRecord(t *testing.T) {
	t.Parallel()

	records := []record.Record{
		{Script: "s1", Version: "v1", NumProcess: 1, Count: 100, ElapsedTime: 10},
	}
	got := AggregateThroughput(records, []int{1, 2})

	st, ok := got["s1"]
	if !ok {
		t.Fatal("missing script s1")
	}
	wantMeasured := []VersionSeries{{Version: "v1", Data: []Point{{X: 1, Y: 10}}}}
	if !reflect.DeepEqual(st.Measured, wantMeasured) {
		t.Fatalf("measured = %+v, want %+v", st.Measured, wantMeasured)
	}
}

func TestAggregateThroughputAveragesAndRounds(t *testing.T) {
	t.Parallel()

	// 100/10=10 and 100/20=5 average to 7.5, rounded measured y is 8.
	records := []record.Record{
		{Script: "s1", Version: "v1", NumProcess: 1, Count: 100, ElapsedTime: 10},
		{Script: "s1", Version: "v1", NumProcess: 1, Count: 100, ElapsedTime: 20},
	}
	got := AggregateThroughput(records, []int{1})

	data := got["s1"].Measured[0].Data
	if len(data) != 1 || data[0] != (Point{X: 1, Y: 8}) {
		t.Fatalf("measured data = %+v, want [{1 8}]", data)
	}
}

func TestAggregateThroughputZeroElapsed(t *testing.T) {
	t.Parallel()

	records := []record.Record{
		{Script: "s1", Version: "v1", NumProcess: 1, Count: 100, ElapsedTime: 0},
	}
	got := AggregateThroughput(records, []int{1})

	if y := got["s1"].Measured[0].Data[0].Y; y != 0 {
		t.Fatalf("zero elapsed measured y = %d, want 0", y)
	}
}

func TestAggregateThroughputInterpolatedGrid(t *testing.T) {
	t.Parallel()

	// Measured at 1 and 4 processes; the grid samples 1..5.
	records := []record.Record{
		{Script: "s1", Version: "v1", NumProcess: 1, Count: 100, ElapsedTime: 10}, // 10/s
		{Script: "s1", Version: "v1", NumProcess: 4, Count: 400, ElapsedTime: 10}, // 40/s
	}
	got := AggregateThroughput(records, []int{1, 2, 3, 4, 5})

	interp := got["s1"].Interpolated[0]
	want := []Point{
		{X: 1, Y: 10}, // exact match, raw average
		{X: 2, Y: 20}, // linear between 10 and 40
		{X: 3, Y: 30},
		{X: 4, Y: 40}, // exact match
		{X: 5, Y: 50}, // extrapolated with slope 10
	}
	if !reflect.DeepEqual(interp.Data, want) {
		t.Fatalf("interpolated = %+v, want %+v", interp.Data, want)
	}
}

func TestAggregateThroughputExactMatchUsesRawSamples(t *testing.T) {
	t.Parallel()

	// Raw samples at x=1 average to 7.5. The measured series stores the
	// rounded 8, but the grid entry at x=1 must re-average the raw values
	// (round(7.5) = 8) rather than reuse the rounded measured point, so the
	// two stay equal here but diverge when more targets hit the same bucket.
	records := []record.Record{
		{Script: "s1", Version: "v1", NumProcess: 1, Count: 100, ElapsedTime: 10},
		{Script: "s1", Version: "v1", NumProcess: 1, Count: 100, ElapsedTime: 20},
		{Script: "s1", Version: "v1", NumProcess: 3, Count: 300, ElapsedTime: 10},
	}
	got := AggregateThroughput(records, []int{1})

	if y := got["s1"].Interpolated[0].Data[0].Y; y != 8 {
		t.Fatalf("grid y at measured x = %d, want 8", y)
	}
}

func TestAggregateThroughputVersionDefaultAndGrouping(t *testing.T) {
	t.Parallel()

	records := record.Normalize([]record.Record{
		{Script: "s1", NumProcess: 1, Count: 100, ElapsedTime: 10},
		{Script: "s1", Version: "v2", NumProcess: 1, Count: 100, ElapsedTime: 5},
	})
	got := AggregateThroughput(records, []int{1})

	st := got["s1"]
	if len(st.Measured) != 2 {
		t.Fatalf("expected 2 version series, got %d", len(st.Measured))
	}
	if st.Measured[0].Version != record.DefaultVersion || st.Measured[1].Version != "v2" {
		t.Fatalf("version order = %q, %q", st.Measured[0].Version, st.Measured[1].Version)
	}
}

func TestAggregateThroughputIdempotent(t *testing.T) {
	t.Parallel()

	records := []record.Record{
		{Script: "s2", Version: "v1", NumProcess: 2, Count: 200, ElapsedTime: 4},
		{Script: "s1", Version: "v1", NumProcess: 1, Count: 100, ElapsedTime: 10},
		{Script: "s1", Version: "v2", NumProcess: 4, Count: 100, ElapsedTime: 2},
	}

	first := AggregateThroughput(records, DefaultTargetGrid())
	second := AggregateThroughput(records, DefaultTargetGrid())
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated aggregation differs")
	}
}
