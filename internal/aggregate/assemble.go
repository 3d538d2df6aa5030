// internal/aggregate/assemble.go
package aggregate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/genbench/genbench/internal/record"
)

// targetGridMax is the largest process count on the fixed resampling grid.
const targetGridMax = 20

const bytesPerMB = 1024 * 1024

// DefaultTargetGrid returns the fixed set of process counts (1..20) at which
// interpolated throughput is always reported.
func DefaultTargetGrid() []int {
	grid := make([]int, targetGridMax)
	for i := range grid {
		grid[i] = i + 1
	}
	return grid
}

// ReportData is the serializable aggregation payload.
type ReportData struct {
	ThroughputByScript map[string]ScriptThroughput `json:"throughput_by_script"`
	MemoryByScript     map[string]ScriptMemory     `json:"memory_by_script"`
	OverallThroughput  []VersionThroughput         `json:"overall_throughput"`
}

// BuildReportData runs the three aggregators over the same record list.
func BuildReportData(records []record.Record, targetXs []int) ReportData {
	return ReportData{
		ThroughputByScript: AggregateThroughput(records, targetXs),
		MemoryByScript:     AggregateMemory(records),
		OverallThroughput:  AggregateOverallThroughput(records),
	}
}

// Dataset is one chartable series with a human-readable label.
type Dataset struct {
	Label string  `json:"label"`
	Data  []Point `json:"data"`
	Type  string  `json:"type"`
}

// VersionSummary rolls up every record of one version for the cross-version
// comparison table.
type VersionSummary struct {
	AvgThroughput float64 `json:"avgThroughput"`
	AvgMemory     float64 `json:"avgMemory"`
	TestCount     int     `json:"testCount"`
}

// RenderContext is the structured input handed to the report renderer.
type RenderContext struct {
	Title                    string                          `json:"title"`
	RawThroughputDatasets    []Dataset                       `json:"rawThroughputDatasets"`
	SmoothThroughputDatasets []Dataset                       `json:"smoothThroughputDatasets"`
	RawSingleMemoryDatasets  []Dataset                       `json:"rawSingleMemoryDatasets"`
	RawMultiMemoryDatasets   map[string]map[string][]Dataset `json:"rawMultiMemoryDatasets"`
	VersionSummary           map[string]VersionSummary       `json:"versionSummary"`
	OverallThroughput        []VersionThroughput             `json:"overallThroughput"`
}

// BuildRenderContext reshapes the aggregation payload into renderer input,
// using the fixed 1..20 target grid for interpolated throughput. The context
// is a view over BuildReportData's output; it does not re-group raw records.
func BuildRenderContext(title string, records []record.Record) RenderContext {
	data := BuildReportData(records, DefaultTargetGrid())

	ctx := RenderContext{
		Title:                    title,
		RawThroughputDatasets:    []Dataset{},
		SmoothThroughputDatasets: []Dataset{},
		RawSingleMemoryDatasets:  []Dataset{},
		RawMultiMemoryDatasets:   map[string]map[string][]Dataset{},
		OverallThroughput:        data.OverallThroughput,
	}

	for _, script := range sortedKeys(data.ThroughputByScript) {
		st := data.ThroughputByScript[script]
		for _, series := range st.Measured {
			ctx.RawThroughputDatasets = append(ctx.RawThroughputDatasets, Dataset{
				Label: seriesLabel(script, series.Version),
				Data:  series.Data,
				Type:  "scatter",
			})
		}
		for _, series := range st.Interpolated {
			ctx.SmoothThroughputDatasets = append(ctx.SmoothThroughputDatasets, Dataset{
				Label: seriesLabel(script, series.Version),
				Data:  series.Data,
				Type:  "line",
			})
		}
	}

	for _, script := range sortedKeys(data.MemoryByScript) {
		sm := data.MemoryByScript[script]
		for _, series := range sm.SingleProcess {
			ctx.RawSingleMemoryDatasets = append(ctx.RawSingleMemoryDatasets, Dataset{
				Label: seriesLabel(script, series.Version),
				Data:  series.Data,
				Type:  "line",
			})
		}
		for _, workers := range sortedKeys(sm.MultiProcess) {
			workersKey := strconv.Itoa(workers)
			for _, series := range sm.MultiProcess[workers] {
				byWorkers, ok := ctx.RawMultiMemoryDatasets[series.Version]
				if !ok {
					byWorkers = map[string][]Dataset{}
					ctx.RawMultiMemoryDatasets[series.Version] = byWorkers
				}
				byWorkers[workersKey] = append(byWorkers[workersKey], Dataset{
					Label: script,
					Data:  series.Data,
					Type:  "line",
				})
			}
		}
	}

	ctx.VersionSummary = buildVersionSummary(records, data.OverallThroughput)
	return ctx
}

// buildVersionSummary rolls up test count and mean memory per version across
// all records, reusing the overall aggregator's mean throughput.
func buildVersionSummary(records []record.Record, overall []VersionThroughput) map[string]VersionSummary {
	memSums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		memSums[r.Version] += float64(r.PeakMemory) / bytesPerMB
		counts[r.Version]++
	}

	summary := make(map[string]VersionSummary, len(overall))
	for _, vt := range overall {
		n := counts[vt.Version]
		avgMem := 0.0
		if n > 0 {
			avgMem = memSums[vt.Version] / float64(n)
		}
		summary[vt.Version] = VersionSummary{
			AvgThroughput: vt.Throughput,
			AvgMemory:     avgMem,
			TestCount:     n,
		}
	}
	return summary
}

func seriesLabel(script, version string) string {
	return fmt.Sprintf("%s - %s", script, version)
}

func sortedKeys[K ~int | ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
