// internal/record/record.go
// Package record defines the measurement record produced by benchmark runs
// and consumed by the aggregation core.
package record

// DefaultVersion is the sentinel version key assigned to records measured
// against the currently installed engine.
const DefaultVersion = "current"

// Record is one benchmark measurement. Records are immutable once observed:
// aggregation reads them but never mutates them.
type Record struct {
	Script         string  `json:"script"`
	Version        string  `json:"version,omitempty"`
	Count          int     `json:"count"`
	Exporter       string  `json:"exporter,omitempty"`
	NumProcess     int     `json:"num_process"`
	Iteration      int     `json:"iteration,omitempty"`
	ElapsedTime    float64 `json:"elapsed_time"`
	PeakMemory     int64   `json:"peak_memory,omitempty"`
	MemoryTimeline []int64 `json:"memory_timeline,omitempty"`
}

const bytesPerMB = 1024 * 1024

// Throughput returns records generated per second. A zero elapsed time is
// defined as zero throughput, not an error.
func (r Record) Throughput() float64 {
	if r.ElapsedTime <= 0 {
		return 0
	}
	return float64(r.Count) / r.ElapsedTime
}

// PeakMemoryMB returns the peak of the memory timeline in megabytes. The
// second return value is false when the record carries no memory data.
func (r Record) PeakMemoryMB() (float64, bool) {
	if len(r.MemoryTimeline) == 0 {
		return 0, false
	}
	peak := r.MemoryTimeline[0]
	for _, v := range r.MemoryTimeline[1:] {
		if v > peak {
			peak = v
		}
	}
	return float64(peak) / bytesPerMB, true
}

// Normalize applies default substitutions for optional fields. It is called
// once at ingestion so the aggregators never see an empty version key.
func Normalize(records []Record) []Record {
	normalized := make([]Record, len(records))
	for i, r := range records {
		if r.Version == "" {
			r.Version = DefaultVersion
		}
		normalized[i] = r
	}
	return normalized
}
