// internal/bench/runner.go
package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/genbench/genbench/internal/appconfig"
	"github.com/genbench/genbench/internal/logging"
	"github.com/genbench/genbench/internal/record"
)

// function aliases allow tests to substitute the expensive pieces.
var (
	measureFn      = Measure
	runEngineFn    = runEngine
	installFn      = runInstallCommand
	writeResultsFn = record.Write
)

// Progress describes one completed benchmark execution.
type Progress struct {
	Version   string
	Script    string
	Count     int
	Workers   int
	Iteration int
	Completed int
	Total     int
}

// ProgressFunc receives progress updates during Collect. It may be nil.
type ProgressFunc func(Progress)

// Runner executes the configured benchmark matrix.
type Runner struct {
	cfg appconfig.Config
}

// New creates a Runner for the given configuration.
func New(cfg appconfig.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Collect runs every (version, script, count, exporter, process count,
// iteration) combination, saves each version's records to the results
// directory, and returns the records grouped by version. Failed engine runs
// are logged and skipped; they do not abort the whole collection.
func (r *Runner) Collect(ctx context.Context, progress ProgressFunc) (map[string][]record.Record, error) {
	scripts, err := r.listScripts()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.cfg.TmpPath(), 0o755); err != nil {
		return nil, fmt.Errorf("create tmp directory: %w", err)
	}

	versions := r.cfg.VersionList()
	exporters := r.cfg.ExporterList()
	iterations := r.cfg.IterationCount()
	total := len(versions) * len(scripts) * len(r.cfg.Counts) * len(exporters) * len(r.cfg.NumProcesses) * iterations
	completed := 0

	overall := make(map[string][]record.Record, len(versions))
	for _, version := range versions {
		if version != record.DefaultVersion {
			logging.LogEvent("Installing engine version %s", version)
			if err := installFn(ctx, r.cfg.InstallCommand, version); err != nil {
				return nil, fmt.Errorf("install version %s: %w", version, err)
			}
		} else {
			logging.LogEvent("Benchmarking the currently installed engine version")
		}

		var versionRecords []record.Record
		for _, script := range scripts {
			logging.LogEvent("[%s] Processing script: %s", version, filepath.Base(script))
			for _, count := range r.cfg.Counts {
				for _, exporter := range exporters {
					for _, workers := range r.cfg.NumProcesses {
						for i := 1; i <= iterations; i++ {
							rec, err := r.runOnce(ctx, version, script, count, exporter, workers, i)
							completed++
							if err != nil {
								logging.LogEvent("[%s] run failed: %v", version, err)
							} else {
								versionRecords = append(versionRecords, rec)
							}
							if progress != nil {
								progress(Progress{
									Version:   version,
									Script:    filepath.Base(script),
									Count:     count,
									Workers:   workers,
									Iteration: i,
									Completed: completed,
									Total:     total,
								})
							}
						}
					}
				}
			}
		}

		overall[version] = versionRecords
		path, err := writeResultsFn(r.cfg.ResultsPath(), version, versionRecords)
		if err != nil {
			return nil, fmt.Errorf("save results for version %s: %w", version, err)
		}
		logging.LogEvent("Results for version %s saved to %s", version, path)
	}

	return overall, nil
}

// runOnce prepares and executes a single benchmark configuration.
func (r *Runner) runOnce(ctx context.Context, version, script string, count int, exporter string, workers, iteration int) (record.Record, error) {
	logging.LogRun(version, filepath.Base(script), count, workers, iteration, "exporter="+exporter)

	content, err := prepareScript(script, count, workers, exporter)
	if err != nil {
		return record.Record{}, err
	}
	tempPath, err := writeTempScript(r.cfg.TmpPath(), content)
	if err != nil {
		return record.Record{}, err
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			logging.LogEvent("Error cleaning up temporary script %s: %v", tempPath, err)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, r.cfg.RunTimeout())
	defer cancel()

	var runErr error
	elapsed, peak, timeline := measureFn(func() {
		runErr = runEngineFn(runCtx, r.cfg.EngineCommand, tempPath)
	}, r.cfg.SampleInterval())
	if runErr != nil {
		return record.Record{}, runErr
	}

	return record.Record{
		Script:         filepath.Base(script),
		Version:        version,
		Count:          count,
		Exporter:       exporter,
		NumProcess:     workers,
		Iteration:      iteration,
		ElapsedTime:    elapsed.Seconds(),
		PeakMemory:     peak,
		MemoryTimeline: timeline,
	}, nil
}

// listScripts returns the workload script paths in lexical order.
func (r *Runner) listScripts() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(r.cfg.ScriptsDir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("scan scripts dir %s: %w", r.cfg.ScriptsDir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no workload scripts found in %s", r.cfg.ScriptsDir)
	}
	sort.Strings(matches)
	return matches, nil
}

// prepareScript fills the workload template's placeholders for one run.
func prepareScript(path string, count, workers int, exporter string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read workload script %s: %w", path, err)
	}

	content := string(data)
	content = strings.ReplaceAll(content, "--COUNT--", strconv.Itoa(count))
	content = strings.ReplaceAll(content, "--NUM_PROCESS--", strconv.Itoa(workers))
	if exporter == "NoExporter" {
		content = strings.ReplaceAll(content, "--EXPORTER--", "")
	} else {
		content = strings.ReplaceAll(content, "--EXPORTER--", exporter)
	}
	content = strings.ReplaceAll(content, "--MULTIPROCESSING--", strconv.FormatBool(workers > 1))
	return content, nil
}

// writeTempScript writes prepared content to a uniquely named temp file.
func writeTempScript(dir, content string) (string, error) {
	file, err := os.CreateTemp(dir, "temp_script_*.xml")
	if err != nil {
		return "", fmt.Errorf("create temp script: %w", err)
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return "", fmt.Errorf("write temp script: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close temp script: %w", err)
	}
	return file.Name(), nil
}
