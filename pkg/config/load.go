package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults, and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides on top. Variables follow the naming
// convention JSONGPO_SECTION_FIELD (e.g. JSONGPO_SOURCE_ROOT) and always take
// precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("JSONGPO_SOURCE_ROOT"); val != "" {
		cfg.Source.Root = val
	}
	if val := os.Getenv("JSONGPO_SOURCE_LANGUAGES"); val != "" {
		var langs []string
		for _, lang := range strings.Split(val, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				langs = append(langs, lang)
			}
		}
		if len(langs) > 0 {
			cfg.Source.Languages = langs
		}
	}
	if val := os.Getenv("JSONGPO_SOURCE_MAX_FILE_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Source.MaxFileSize = size
		}
	}

	if val := os.Getenv("JSONGPO_OUTPUT_DIR"); val != "" {
		cfg.Output.Dir = val
	}
	if val := os.Getenv("JSONGPO_OUTPUT_SQLITE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Output.SQLite.Enabled = b
		}
	}
	if val := os.Getenv("JSONGPO_OUTPUT_SQLITE_PATH"); val != "" {
		cfg.Output.SQLite.Path = val
	}
	if val := os.Getenv("JSONGPO_OUTPUT_SQLITE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Output.SQLite.BusyTimeout = d
		}
	}

	if val := os.Getenv("JSONGPO_LIMITS_MAX_DEPTH"); val != "" {
		if depth, err := strconv.Atoi(val); err == nil {
			cfg.Limits.MaxDepth = depth
		}
	}

	if val := os.Getenv("JSONGPO_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("JSONGPO_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("JSONGPO_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
