package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
source:
  root: /data/templates
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Source.Root != "/data/templates" {
		t.Errorf("Source.Root = %q", cfg.Source.Root)
	}
	if len(cfg.Source.Languages) != 1 || cfg.Source.Languages[0] != DefaultLanguage {
		t.Errorf("Source.Languages = %v, want default [%s]", cfg.Source.Languages, DefaultLanguage)
	}
	if cfg.Output.Dir != DefaultOutputDir {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if cfg.Output.SQLite.Path != filepath.Join(DefaultOutputDir, DefaultSQLiteFile) {
		t.Errorf("SQLite.Path = %q", cfg.Output.SQLite.Path)
	}
	if cfg.Limits.MaxDepth != DefaultMaxDepth {
		t.Errorf("Limits.MaxDepth = %d", cfg.Limits.MaxDepth)
	}
	if cfg.Telemetry.Logging.Level != "info" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Telemetry.Logging)
	}
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := writeConfig(t, `
source:
  root: /data/templates
  languages: [en-US, de-DE]
output:
  dir: /data/out
  sqlite:
    enabled: true
    path: /data/out/all.db
limits:
  max_depth: 8
telemetry:
  logging:
    level: debug
    format: json
  metrics:
    enabled: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if len(cfg.Source.Languages) != 2 || cfg.Source.Languages[1] != "de-DE" {
		t.Errorf("Source.Languages = %v", cfg.Source.Languages)
	}
	if !cfg.Output.SQLite.Enabled || cfg.Output.SQLite.Path != "/data/out/all.db" {
		t.Errorf("SQLite = %+v", cfg.Output.SQLite)
	}
	if cfg.Limits.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d", cfg.Limits.MaxDepth)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("Metrics.Enabled = false")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
source:
  root: /data/templates
  languages: ["../escape"]
telemetry:
  logging:
    level: loud
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() should reject invalid values")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want ValidationError", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2: %v", len(verr.Errors), verr)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadConfig() should fail on a missing file")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
source:
  root: /data/templates
`)

	t.Setenv("JSONGPO_SOURCE_LANGUAGES", "fr-FR, it-IT")
	t.Setenv("JSONGPO_OUTPUT_SQLITE_ENABLED", "true")
	t.Setenv("JSONGPO_LIMITS_MAX_DEPTH", "5")
	t.Setenv("JSONGPO_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() failed: %v", err)
	}

	want := []string{"fr-FR", "it-IT"}
	if len(cfg.Source.Languages) != 2 || cfg.Source.Languages[0] != want[0] || cfg.Source.Languages[1] != want[1] {
		t.Errorf("Source.Languages = %v, want %v", cfg.Source.Languages, want)
	}
	if !cfg.Output.SQLite.Enabled {
		t.Error("SQLite.Enabled = false, want env override")
	}
	if cfg.Limits.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d, want 5", cfg.Limits.MaxDepth)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q", cfg.Telemetry.Logging.Level)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Default() must validate cleanly: %v", err)
	}
}
