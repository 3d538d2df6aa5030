package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		fmt.Fprintln(out, "Configuration is not initialized.")
		return
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Scripts Dir:     %s\n", cfg.ScriptsDir)
	fmt.Fprintf(out, "  Results Dir:     %s\n", cfg.ResultsPath())
	fmt.Fprintf(out, "  Reports Dir:     %s\n", cfg.ReportsPath())
	fmt.Fprintf(out, "  Engine Command:  %s\n", strings.Join(cfg.EngineCommand, " "))
	fmt.Fprintf(out, "  Counts:          %v\n", cfg.Counts)
	fmt.Fprintf(out, "  Exporters:       %v\n", cfg.ExporterList())
	fmt.Fprintf(out, "  Num Processes:   %v\n", cfg.NumProcesses)
	fmt.Fprintf(out, "  Iterations:      %d\n", cfg.IterationCount())
	fmt.Fprintf(out, "  Versions:        %v\n", cfg.VersionList())
	fmt.Fprintf(out, "  Sample Interval: %s\n", cfg.SampleInterval())
	fmt.Fprintf(out, "  Run Timeout:     %s\n", cfg.RunTimeout())
	fmt.Fprintf(out, "  Report Title:    %s\n", cfg.ReportTitleOrDefault())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
}
