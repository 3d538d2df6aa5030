// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultSampleInterval is the default spacing between memory samples.
	defaultSampleInterval = 10 * time.Millisecond
	// defaultRunTimeout is the default timeout for one workload subprocess.
	defaultRunTimeout = 600 * time.Second
	// defaultReportTitle is used when the config omits a report title.
	defaultReportTitle = "Consolidated Report"
)

// Config represents the top-level application configuration.
type Config struct {
	ScriptsDir       string   `json:"scriptsDir"`
	ResultsDir       string   `json:"resultsDir,omitempty"`
	ReportsDir       string   `json:"reportsDir,omitempty"`
	TmpDir           string   `json:"tmpDir,omitempty"`
	EngineCommand    []string `json:"engineCommand"`
	InstallCommand   []string `json:"installCommand,omitempty"`
	Counts           []int    `json:"counts"`
	Exporters        []string `json:"exporters,omitempty"`
	NumProcesses     []int    `json:"numProcesses"`
	Iterations       int      `json:"iterations,omitempty"`
	Versions         []string `json:"versions,omitempty"`
	SampleIntervalMs int      `json:"sampleIntervalMs,omitempty"`
	TimeoutSeconds   int      `json:"timeout,omitempty"`
	ReportTitle      string   `json:"reportTitle,omitempty"`
	LogFile          string   `json:"logFile,omitempty"`
	Debug            bool     `json:"debug"`
	Plain            bool     `json:"plain"`
	ConfigPath       string   `json:"-"`
}

// SampleInterval returns the memory sampling interval, falling back to the default if not specified.
func (c Config) SampleInterval() time.Duration {
	if c.SampleIntervalMs <= 0 {
		return defaultSampleInterval
	}
	return time.Duration(c.SampleIntervalMs) * time.Millisecond
}

// RunTimeout returns the timeout for one workload subprocess.
func (c Config) RunTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRunTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IterationCount returns the number of repetitions per test configuration, at least one.
func (c Config) IterationCount() int {
	if c.Iterations <= 0 {
		return 1
	}
	return c.Iterations
}

// VersionList returns the versions under test; when none are configured the
// currently installed engine ("current") is benchmarked.
func (c Config) VersionList() []string {
	if len(c.Versions) == 0 {
		return []string{"current"}
	}
	return c.Versions
}

// ExporterList returns the exporters to test, defaulting to no exporter.
func (c Config) ExporterList() []string {
	if len(c.Exporters) == 0 {
		return []string{"NoExporter"}
	}
	return c.Exporters
}

// ResultsPath returns the directory for raw result files.
func (c Config) ResultsPath() string {
	if c.ResultsDir != "" {
		return c.ResultsDir
	}
	return "results"
}

// ReportsPath returns the directory for generated reports.
func (c Config) ReportsPath() string {
	if c.ReportsDir != "" {
		return c.ReportsDir
	}
	return "reports"
}

// TmpPath returns the directory for prepared workload scripts.
func (c Config) TmpPath() string {
	if c.TmpDir != "" {
		return c.TmpDir
	}
	return "tmp"
}

// ReportTitleOrDefault returns the configured report title, applying a default if not set.
func (c Config) ReportTitleOrDefault() string {
	if c.ReportTitle != "" {
		return c.ReportTitle
	}
	return defaultReportTitle
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return "genbench.log"
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if err := config.validate(); err != nil {
			return Config{}, err
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				if err := config.validate(); err != nil {
					return Config{}, err
				}
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// validate checks the fields a benchmark run cannot proceed without.
func (c Config) validate() error {
	if len(c.EngineCommand) == 0 {
		return errors.New("config must specify an engine command")
	}
	if len(c.Counts) == 0 {
		return errors.New("config must specify at least one record count")
	}
	if len(c.NumProcesses) == 0 {
		return errors.New("config must specify at least one process count")
	}
	return nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
