// internal/aggregate/throughput.go
package aggregate

import (
	"math"
	"sort"

	"github.com/genbench/genbench/internal/record"
)

// throughputKey identifies one throughput bucket. Grouping is explicit
// rather than nested: one flat map keyed by the full tuple.
type throughputKey struct {
	script  string
	version string
	workers int
}

// AggregateThroughput groups records by (script, version, process count),
// averages repeated measurements, and produces the measured series alongside
// a series resampled at targetXs. Target coordinates are evaluated in the
// order given; a target that exactly matches a measured process count
// averages the raw samples at that point, everything else is interpolated
// against the rounded measured series.
func AggregateThroughput(records []record.Record, targetXs []int) map[string]ScriptThroughput {
	samples := make(map[throughputKey][]float64)

	// Output order is first-seen order for scripts and versions, so repeated
	// aggregation of the same input yields identical output.
	var scriptOrder []string
	versionOrder := make(map[string][]string)
	workersByGroup := make(map[[2]string][]int)

	for _, r := range records {
		key := throughputKey{script: r.Script, version: r.Version, workers: r.NumProcess}
		if _, seen := samples[key]; !seen {
			if !containsString(versionOrder[r.Script], r.Version) {
				if len(versionOrder[r.Script]) == 0 {
					scriptOrder = append(scriptOrder, r.Script)
				}
				versionOrder[r.Script] = append(versionOrder[r.Script], r.Version)
			}
			workersByGroup[[2]string{r.Script, r.Version}] = append(workersByGroup[[2]string{r.Script, r.Version}], r.NumProcess)
		}
		samples[key] = append(samples[key], r.Throughput())
	}

	out := make(map[string]ScriptThroughput, len(scriptOrder))
	for _, script := range scriptOrder {
		st := ScriptThroughput{
			Measured:     make([]VersionSeries, 0, len(versionOrder[script])),
			Interpolated: make([]VersionSeries, 0, len(versionOrder[script])),
		}
		for _, version := range versionOrder[script] {
			workers := append([]int(nil), workersByGroup[[2]string{script, version}]...)
			sort.Ints(workers)

			measuredX := make([]float64, len(workers))
			measuredY := make([]float64, len(workers))
			measured := make([]Point, len(workers))
			for i, w := range workers {
				y := roundMean(samples[throughputKey{script, version, w}])
				measuredX[i] = float64(w)
				measuredY[i] = float64(y)
				measured[i] = Point{X: w, Y: y}
			}

			interpolated := make([]Point, len(targetXs))
			for i, t := range targetXs {
				if raw, ok := samples[throughputKey{script, version, t}]; ok {
					// Exact matches average the raw samples so the target
					// grid does not compound rounding error.
					interpolated[i] = Point{X: t, Y: roundMean(raw)}
					continue
				}
				est := Interpolate(float64(t), measuredX, measuredY, InterpolateOptions{})
				interpolated[i] = Point{X: t, Y: int(math.Round(est))}
			}

			st.Measured = append(st.Measured, VersionSeries{Version: version, Data: measured})
			st.Interpolated = append(st.Interpolated, VersionSeries{Version: version, Data: interpolated})
		}
		out[script] = st
	}
	return out
}

// roundMean returns the arithmetic mean of values rounded to the nearest integer.
func roundMean(values []float64) int {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return int(math.Round(sum / float64(len(values))))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
