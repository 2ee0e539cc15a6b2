package config

import (
	"path/filepath"
	"time"
)

// Default values for configuration fields.
const (
	DefaultSourceRoot  = "."
	DefaultLanguage    = "en-US"
	DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

	DefaultOutputDir         = "output"
	DefaultSQLiteFile        = "policies.db"
	DefaultSQLiteBusyTimeout = 5 * time.Second

	DefaultMaxDepth = 20

	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"

	DefaultMetricsNamespace = "jsongpo"
	DefaultMetricsSubsystem = "pipeline"
)

// ApplyDefaults fills every unset field with its default value.
func ApplyDefaults(cfg *Config) {
	if cfg.Source.Root == "" {
		cfg.Source.Root = DefaultSourceRoot
	}
	if len(cfg.Source.Languages) == 0 {
		cfg.Source.Languages = []string{DefaultLanguage}
	}
	if cfg.Source.MaxFileSize == 0 {
		cfg.Source.MaxFileSize = DefaultMaxFileSize
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Output.SQLite.Path == "" {
		cfg.Output.SQLite.Path = filepath.Join(cfg.Output.Dir, DefaultSQLiteFile)
	}
	if cfg.Output.SQLite.BusyTimeout == 0 {
		cfg.Output.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	if cfg.Limits.MaxDepth == 0 {
		cfg.Limits.MaxDepth = DefaultMaxDepth
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
