// internal/cli/run_benchmark.go
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/genbench/genbench/internal/appconfig"
	"github.com/genbench/genbench/internal/bench"
	"github.com/genbench/genbench/internal/logging"
	"github.com/genbench/genbench/internal/record"
	"github.com/genbench/genbench/internal/tui"
)

var benchmarkReportFlag bool

// runBenchmarkCmd executes the full workload matrix from the config file:
// every version x script x count x exporter x process count, repeated per
// iteration, with results persisted per version.
var runBenchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Run the configured workload matrix and record results",
	Long: `Run every configured combination of version, workload script, record
count, exporter, and process count, measure elapsed time and memory for each,
and write the raw results as JSON for later reporting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		return runBenchmark(cmd, cfg)
	},
}

func runBenchmark(cmd *cobra.Command, cfg *appconfig.Config) error {
	if err := logging.Init(cfg.LogFilePath()); err != nil {
		return err
	}
	defer logging.Close()

	runner := bench.New(*cfg)
	ctx := cmd.Context()

	var byVersion map[string][]record.Record
	var runErr error
	if cfg.Plain {
		byVersion, runErr = runner.Collect(ctx, func(p bench.Progress) {
			logging.LogRun(p.Version, p.Script, p.Count, p.Workers, p.Iteration,
				fmt.Sprintf("%d/%d complete", p.Completed, p.Total))
		})
	} else {
		runErr = tui.RunProgress(func(progress bench.ProgressFunc) error {
			var collectErr error
			byVersion, collectErr = runner.Collect(ctx, progress)
			return collectErr
		})
	}
	if runErr != nil {
		return runErr
	}

	total := 0
	for _, recs := range byVersion {
		total += len(recs)
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
		"Benchmark complete: %d runs recorded in %s\n", total, cfg.ResultsPath())

	if benchmarkReportFlag {
		return writeReport(cmd, cfg)
	}
	return nil
}

func init() {
	runBenchmarkCmd.Flags().BoolVar(&benchmarkReportFlag, "report", false, "generate the consolidated report after the run")
	runCmd.AddCommand(runBenchmarkCmd)
}
