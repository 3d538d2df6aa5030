// internal/cli/report_test.go
package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/genbench/genbench/internal/aggregate"
	"github.com/genbench/genbench/internal/appconfig"
	"github.com/genbench/genbench/internal/record"
)

func TestWriteReport(t *testing.T) {
	resultsDir := t.TempDir()
	reportsDir := t.TempDir()

	records := []record.Record{
		{Script: "customers.xml", Version: "current", Count: 100, NumProcess: 1,
			ElapsedTime: 10, MemoryTimeline: []int64{1024 * 1024, 2 * 1024 * 1024}},
		{Script: "customers.xml", Version: "1.2.2", Count: 200, NumProcess: 4,
			ElapsedTime: 10, MemoryTimeline: []int64{1024 * 1024}},
	}
	if _, err := record.Write(resultsDir, "current", records); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	cfg := &appconfig.Config{
		EngineCommand: []string{"engine"},
		Counts:        []int{100},
		NumProcesses:  []int{1},
		ResultsDir:    resultsDir,
		ReportsDir:    reportsDir,
		ReportTitle:   "Nightly Performance",
	}

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := writeReport(cmd, cfg); err != nil {
		t.Fatalf("writeReport returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Overall average throughput", "current", "1.2.2", "Report written to"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	pages, err := filepath.Glob(filepath.Join(reportsDir, "consolidated_performance_report_*.html"))
	if err != nil || len(pages) != 1 {
		t.Fatalf("expected one report page, got %v (err %v)", pages, err)
	}
	payloads, err := filepath.Glob(filepath.Join(reportsDir, "data", "report_data_*.json"))
	if err != nil || len(payloads) != 1 {
		t.Fatalf("expected one report payload, got %v (err %v)", payloads, err)
	}
}

func TestWriteReportNoResults(t *testing.T) {
	cfg := &appconfig.Config{
		EngineCommand: []string{"engine"},
		Counts:        []int{100},
		NumProcesses:  []int{1},
		ResultsDir:    t.TempDir(),
		ReportsDir:    t.TempDir(),
	}

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	if err := writeReport(cmd, cfg); err == nil {
		t.Fatalf("expected error when no result files exist")
	}
}

func TestPrintOverallSummary(t *testing.T) {
	var buf bytes.Buffer
	printOverallSummary(&buf, []aggregate.VersionThroughput{
		{Version: "1.2.2", Throughput: 12.5},
		{Version: "current", Throughput: 20},
	})

	out := buf.String()
	for _, want := range []string{"1.2.2", "12.50", "current", "20.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPrintOverallSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	printOverallSummary(&buf, nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty summary, got %q", buf.String())
	}
}

func TestRequireConfigWithoutLoad(t *testing.T) {
	prevCfg, prevErr := currentConfig, configErr
	defer func() { currentConfig, configErr = prevCfg, prevErr }()

	currentConfig, configErr = nil, nil
	if _, err := requireConfig(); err == nil {
		t.Fatalf("expected error when no config is loaded")
	}

	cfg := appconfig.Config{EngineCommand: []string{"engine"}}
	currentConfig = &cfg
	got, err := requireConfig()
	if err != nil {
		t.Fatalf("requireConfig returned error: %v", err)
	}
	if got != &cfg {
		t.Fatalf("requireConfig returned a different config pointer")
	}
}
