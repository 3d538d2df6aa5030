// internal/aggregate/overall.go
package aggregate

import (
	"sort"

	"github.com/genbench/genbench/internal/record"
)

// AggregateOverallThroughput computes one average throughput per version
// across every script and configuration. Entries are sorted by version key.
func AggregateOverallThroughput(records []record.Record) []VersionThroughput {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		sums[r.Version] += r.Throughput()
		counts[r.Version]++
	}

	overall := make([]VersionThroughput, 0, len(sums))
	for version, sum := range sums {
		overall = append(overall, VersionThroughput{
			Version:    version,
			Throughput: sum / float64(counts[version]),
		})
	}
	sort.Slice(overall, func(i, j int) bool { return overall[i].Version < overall[j].Version })
	return overall
}
