// Package config defines the run configuration for the converter: where the
// policy templates live, which languages to project, where output goes, and
// how the run is observed. Configuration is loaded from YAML, filled with
// defaults, optionally overridden from the environment, and validated before
// the pipeline starts.
package config

import "time"

// Config is the root configuration.
type Config struct {
	// Source describes the policy template tree to convert.
	Source SourceConfig `yaml:"source"`

	// Output describes the sinks written at the end of a run.
	Output OutputConfig `yaml:"output"`

	// Limits bounds the structural checks applied during a run.
	Limits LimitsConfig `yaml:"limits"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// SourceConfig describes the input tree.
type SourceConfig struct {
	// Root is the directory scanned recursively for definition files.
	Root string `yaml:"root"`

	// Languages are the language tags to project (e.g. "en-US"). A language
	// with no resource files is skipped with a warning, never an error.
	Languages []string `yaml:"languages"`

	// MaxFileSize is the largest source file accepted, in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`
}

// OutputConfig describes the output sinks.
type OutputConfig struct {
	// Dir receives one <language>.json file per projected language.
	Dir string `yaml:"dir"`

	// SQLite optionally mirrors every projection into one database.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig configures the optional database sink.
type SQLiteConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`

	// BusyTimeout is how long to wait for locks before failing.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// LimitsConfig bounds structural checks.
type LimitsConfig struct {
	// MaxDepth is the maximum category nesting depth before a chain is
	// reported as ambiguous.
	MaxDepth int `yaml:"max_depth"`
}

// TelemetryConfig groups the observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is one of json, text, console.
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus pipeline metrics.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// Default returns a configuration with every default applied, for runs driven
// purely by command-line flags.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
