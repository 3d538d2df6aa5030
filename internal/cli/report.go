// internal/cli/report.go
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/genbench/genbench/internal/aggregate"
	"github.com/genbench/genbench/internal/appconfig"
	"github.com/genbench/genbench/internal/record"
	"github.com/genbench/genbench/internal/report"
)

// reportCmd assembles every recorded result file into one HTML report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the consolidated HTML report from recorded results",
	Long: `Load every result file from the results directory, aggregate throughput
and memory across versions and process counts, and write a self-contained HTML
report plus its JSON payload.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		return writeReport(cmd, cfg)
	},
}

func writeReport(cmd *cobra.Command, cfg *appconfig.Config) error {
	records, err := record.LoadDir(cfg.ResultsPath())
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}

	renderCtx := aggregate.BuildRenderContext(cfg.ReportTitleOrDefault(), records)
	payload := aggregate.BuildReportData(records, aggregate.DefaultTargetGrid())

	path, err := report.Write(cfg.ReportsPath(), renderCtx, payload)
	if err != nil {
		return err
	}

	printOverallSummary(cmd.OutOrStdout(), payload.OverallThroughput)
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}

// printOverallSummary renders the per-version average throughput table that
// also appears in the HTML report.
func printOverallSummary(out io.Writer, overall []aggregate.VersionThroughput) {
	if len(overall) == 0 {
		return
	}
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

	fmt.Fprintln(out, headerStyle.Render("Overall average throughput (records/sec)"))
	for _, entry := range overall {
		fmt.Fprintln(out, rowStyle.Render(fmt.Sprintf("  %-20s %.2f", entry.Version, entry.Throughput)))
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
