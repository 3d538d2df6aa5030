// internal/record/store.go
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/genbench/genbench/internal/util"
)

// resultSchema describes one result file: an array of measurement records.
// Required fields match what the aggregation core dereferences; everything
// else is optional and defaulted downstream.
const resultSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["script", "count", "num_process", "elapsed_time"],
    "properties": {
      "script":          {"type": "string", "minLength": 1},
      "version":         {"type": "string"},
      "count":           {"type": "integer", "minimum": 0},
      "exporter":        {"type": "string"},
      "num_process":     {"type": "integer", "minimum": 1},
      "iteration":       {"type": "integer"},
      "elapsed_time":    {"type": "number", "minimum": 0},
      "peak_memory":     {"type": "integer"},
      "memory_timeline": {"type": "array", "items": {"type": "integer", "minimum": 0}}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(resultSchema)

// Validate checks raw result JSON against the record schema. A malformed
// record aborts the whole load; the aggregators never repair input.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate results: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("malformed result record: %s", errs[0].String())
		}
		return fmt.Errorf("malformed result record")
	}
	return nil
}

// Write saves one version's records to results_<version>_<timestamp>.json in dir.
func Write(dir, version string, records []Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("results_%s_%s.json", util.Slugify(version), timestamp))

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	if err := util.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write results file: %w", err)
	}
	return path, nil
}

// LoadFile reads, validates, and normalizes one result file.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file %s: %w", path, err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("results file %s: %w", path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse results file %s: %w", path, err)
	}
	return Normalize(records), nil
}

// LoadDir merges every results_*.json file in dir, in lexical filename order.
func LoadDir(dir string) ([]Record, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "results_*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan results dir %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no result files found in %s", dir)
	}
	sort.Strings(matches)

	var all []Record
	for _, path := range matches {
		records, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
