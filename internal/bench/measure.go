// internal/bench/measure.go
// Package bench runs the configured workloads across engine versions and
// collects measurement records for aggregation.
package bench

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// currentMemoryUsage returns the resident set size of this process plus all
// of its descendants, in bytes. Sampling failures count as zero rather than
// aborting a run in flight.
var currentMemoryUsage = func() int64 {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	return processTreeRSS(proc)
}

func processTreeRSS(proc *process.Process) int64 {
	var total int64
	if mem, err := proc.MemoryInfo(); err == nil {
		total += int64(mem.RSS)
	}
	children, err := proc.Children()
	if err != nil {
		return total
	}
	for _, child := range children {
		total += processTreeRSS(child)
	}
	return total
}

// Measure runs runnable while sampling process-tree memory at the given
// interval. It returns the elapsed wall-clock time, the peak memory observed
// above the baseline reading, and the raw timeline of samples in bytes.
func Measure(runnable func(), interval time.Duration) (time.Duration, int64, []int64) {
	baseline := currentMemoryUsage()
	maxMem := baseline
	timeline := []int64{baseline}

	done := make(chan struct{})
	start := time.Now()
	go func() {
		defer close(done)
		runnable()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return time.Since(start), maxMem - baseline, timeline
		case <-ticker.C:
			current := currentMemoryUsage()
			timeline = append(timeline, current)
			if current > maxMem {
				maxMem = current
			}
		}
	}
}
