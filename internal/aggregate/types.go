// internal/aggregate/types.go
package aggregate

// Point is one chartable coordinate pair.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// VersionSeries is an ordered series of points for one engine version.
type VersionSeries struct {
	Version string  `json:"version"`
	Data    []Point `json:"data"`
}

// ScriptThroughput holds the measured and interpolated throughput series for
// one script, one entry per version.
type ScriptThroughput struct {
	Measured     []VersionSeries `json:"measured"`
	Interpolated []VersionSeries `json:"interpolated"`
}

// ScriptMemory holds peak-memory series for one script, split between
// single-process runs and multi-process runs keyed by process count.
type ScriptMemory struct {
	SingleProcess []VersionSeries         `json:"single_process"`
	MultiProcess  map[int][]VersionSeries `json:"multi_process"`
}

// VersionThroughput is the overall average throughput for one version across
// all scripts and configurations.
type VersionThroughput struct {
	Version    string  `json:"version"`
	Throughput float64 `json:"throughput"`
}
