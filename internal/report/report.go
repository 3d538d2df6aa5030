// internal/report/report.go
// Package report renders the aggregated benchmark data as a standalone HTML
// dashboard.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/genbench/genbench/internal/aggregate"
	"github.com/genbench/genbench/internal/util"
)

// reportData is the view model handed to the HTML template.
type reportData struct {
	Title       string
	ContextJSON template.JS
}

// Generate renders a standalone HTML dashboard from the render context.
func Generate(ctx aggregate.RenderContext) (string, error) {
	payload, err := json.Marshal(ctx)
	if err != nil {
		return "", err
	}

	viewModel := reportData{
		Title:       ctx.Title,
		ContextJSON: template.JS(payload),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, viewModel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write renders the dashboard and saves it, together with the serialized
// aggregation payload, under dir. It returns the HTML report path.
func Write(dir string, ctx aggregate.RenderContext, payload aggregate.ReportData) (string, error) {
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	html, err := Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	htmlPath := filepath.Join(dir, fmt.Sprintf("consolidated_performance_report_%s.html", timestamp))
	if err := util.WriteFile(htmlPath, []byte(html)); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	payloadPath := filepath.Join(dir, "data", fmt.Sprintf("report_data_%s.json", timestamp))
	if err := util.WriteFile(payloadPath, data); err != nil {
		return "", fmt.Errorf("write payload: %w", err)
	}

	return htmlPath, nil
}

var reportTemplate = template.Must(template.New("performance-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --accent: #3B82F6;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --border: #E2E8F0;
    }
    body {
      background-color: var(--light);
      color: var(--text);
    }
    .navbar-dark {
      background-color: var(--primary) !important;
    }
    .chart-card {
      background: var(--background);
      border-radius: 16px;
      padding: 1.5rem;
      margin-bottom: 1.5rem;
      box-shadow: 0 1px 3px rgba(15, 23, 42, 0.1);
      border: 1px solid var(--border);
    }
    .chart-title {
      font-size: 1.5rem;
      font-weight: 700;
      color: var(--text);
      margin-bottom: 0.25rem;
    }
    .chart-subtitle {
      color: var(--secondary);
      margin-bottom: 1.5rem;
    }
    .chart-canvas {
      position: relative;
      height: 420px;
    }
    .table thead th {
      background-color: var(--light);
      color: var(--text);
      border-color: var(--border);
    }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark mb-4">
    <div class="container-fluid">
      <span class="navbar-brand">{{ .Title }}</span>
    </div>
  </nav>
  <div class="container-fluid px-4">
    <div class="chart-card">
      <div class="chart-title">Version Summary</div>
      <div class="chart-subtitle">Averages across every script and configuration</div>
      <table class="table table-striped table-bordered" id="versionSummaryTable">
        <thead>
          <tr><th>Version</th><th>Tests</th><th>Avg Throughput (records/s)</th><th>Avg Peak Memory (MB)</th></tr>
        </thead>
        <tbody></tbody>
      </table>
    </div>
    <div class="chart-card">
      <div class="chart-title">Measured Throughput</div>
      <div class="chart-subtitle">Raw averages per process count</div>
      <div class="chart-canvas"><canvas id="measuredThroughputChart"></canvas></div>
    </div>
    <div class="chart-card">
      <div class="chart-title">Interpolated Throughput</div>
      <div class="chart-subtitle">Resampled on the 1&ndash;20 process grid</div>
      <div class="chart-canvas"><canvas id="interpolatedThroughputChart"></canvas></div>
    </div>
    <div class="chart-card">
      <div class="chart-title">Single-Process Peak Memory</div>
      <div class="chart-subtitle">Peak memory per record count (MB)</div>
      <div class="chart-canvas"><canvas id="singleMemoryChart"></canvas></div>
    </div>
    <div class="chart-card">
      <div class="chart-title">Overall Throughput by Version</div>
      <div class="chart-subtitle">One bar per engine version</div>
      <div class="chart-canvas"><canvas id="overallThroughputChart"></canvas></div>
    </div>
  </div>
  <script>
    const context = {{ .ContextJSON }};
    const palette = ['#3B82F6', '#10B981', '#F59E0B', '#EF4444', '#8B5CF6', '#14B8A6', '#F97316', '#64748B'];

    function colored(datasets) {
      return datasets.map((ds, i) => ({
        label: ds.label,
        data: ds.data,
        showLine: ds.type === 'line',
        borderColor: palette[i % palette.length],
        backgroundColor: palette[i % palette.length],
        tension: 0.25,
      }));
    }

    function scatterChart(id, datasets, xTitle, yTitle) {
      new Chart(document.getElementById(id), {
        type: 'scatter',
        data: { datasets: colored(datasets) },
        options: {
          maintainAspectRatio: false,
          scales: {
            x: { title: { display: true, text: xTitle } },
            y: { beginAtZero: true, title: { display: true, text: yTitle } },
          },
        },
      });
    }

    scatterChart('measuredThroughputChart', context.rawThroughputDatasets, 'Processes', 'Records per second');
    scatterChart('interpolatedThroughputChart', context.smoothThroughputDatasets, 'Processes', 'Records per second');
    scatterChart('singleMemoryChart', context.rawSingleMemoryDatasets, 'Record count', 'Peak memory (MB)');

    new Chart(document.getElementById('overallThroughputChart'), {
      type: 'bar',
      data: {
        labels: context.overallThroughput.map(v => v.version),
        datasets: [{
          label: 'Avg records per second',
          data: context.overallThroughput.map(v => v.throughput),
          backgroundColor: palette[0],
        }],
      },
      options: { maintainAspectRatio: false, scales: { y: { beginAtZero: true } } },
    });

    const tbody = document.querySelector('#versionSummaryTable tbody');
    Object.keys(context.versionSummary).sort().forEach(version => {
      const s = context.versionSummary[version];
      const row = document.createElement('tr');
      row.innerHTML = '<td>' + version + '</td><td>' + s.testCount + '</td>' +
        '<td>' + s.avgThroughput.toFixed(2) + '</td><td>' + s.avgMemory.toFixed(2) + '</td>';
      tbody.appendChild(row);
    });
  </script>
</body>
</html>
`
