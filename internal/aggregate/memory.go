// internal/aggregate/memory.go
package aggregate

import (
	"sort"

	"github.com/genbench/genbench/internal/record"
)

// memoryKey identifies one peak-memory bucket. Single-process buckets always
// carry workers == 1.
type memoryKey struct {
	script  string
	version string
	workers int
	count   int
}

type scriptVersion struct {
	script  string
	version string
}

type scriptVersionWorkers struct {
	script  string
	version string
	workers int
}

// AggregateMemory groups peak memory (in MB) per record count, separating
// single-process from multi-process runs. Records without a memory timeline
// are skipped; a script appears in the output only when at least one of its
// records carries memory data.
func AggregateMemory(records []record.Record) map[string]ScriptMemory {
	singleSamples := make(map[memoryKey][]float64)
	multiSamples := make(map[memoryKey][]float64)

	var scriptOrder []string
	seenScript := make(map[string]bool)
	singleVersions := make(map[string][]string)
	multiVersions := make(map[string][]string)
	singleCounts := make(map[scriptVersion][]int)
	multiWorkers := make(map[scriptVersion][]int)
	multiCounts := make(map[scriptVersionWorkers][]int)

	for _, r := range records {
		peak, ok := r.PeakMemoryMB()
		if !ok {
			continue
		}
		if !seenScript[r.Script] {
			seenScript[r.Script] = true
			scriptOrder = append(scriptOrder, r.Script)
		}

		if r.NumProcess == 1 {
			key := memoryKey{script: r.Script, version: r.Version, workers: 1, count: r.Count}
			if _, seen := singleSamples[key]; !seen {
				if !containsString(singleVersions[r.Script], r.Version) {
					singleVersions[r.Script] = append(singleVersions[r.Script], r.Version)
				}
				sv := scriptVersion{r.Script, r.Version}
				singleCounts[sv] = append(singleCounts[sv], r.Count)
			}
			singleSamples[key] = append(singleSamples[key], peak)
			continue
		}

		key := memoryKey{script: r.Script, version: r.Version, workers: r.NumProcess, count: r.Count}
		if _, seen := multiSamples[key]; !seen {
			if !containsString(multiVersions[r.Script], r.Version) {
				multiVersions[r.Script] = append(multiVersions[r.Script], r.Version)
			}
			sv := scriptVersion{r.Script, r.Version}
			if !containsInt(multiWorkers[sv], r.NumProcess) {
				multiWorkers[sv] = append(multiWorkers[sv], r.NumProcess)
			}
			svw := scriptVersionWorkers{r.Script, r.Version, r.NumProcess}
			multiCounts[svw] = append(multiCounts[svw], r.Count)
		}
		multiSamples[key] = append(multiSamples[key], peak)
	}

	out := make(map[string]ScriptMemory, len(scriptOrder))
	for _, script := range scriptOrder {
		sm := ScriptMemory{
			SingleProcess: []VersionSeries{},
			MultiProcess:  map[int][]VersionSeries{},
		}

		for _, version := range singleVersions[script] {
			counts := append([]int(nil), singleCounts[scriptVersion{script, version}]...)
			sort.Ints(counts)
			data := make([]Point, len(counts))
			for i, c := range counts {
				data[i] = Point{X: c, Y: roundMean(singleSamples[memoryKey{script, version, 1, c}])}
			}
			sm.SingleProcess = append(sm.SingleProcess, VersionSeries{Version: version, Data: data})
		}

		for _, version := range multiVersions[script] {
			for _, workers := range multiWorkers[scriptVersion{script, version}] {
				counts := append([]int(nil), multiCounts[scriptVersionWorkers{script, version, workers}]...)
				sort.Ints(counts)
				data := make([]Point, len(counts))
				for i, c := range counts {
					data[i] = Point{X: c, Y: roundMean(multiSamples[memoryKey{script, version, workers, c}])}
				}
				sm.MultiProcess[workers] = append(sm.MultiProcess[workers], VersionSeries{Version: version, Data: data})
			}
		}

		out[script] = sm
	}
	return out
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
