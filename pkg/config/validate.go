package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g. "source.root").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every validation error found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "text": true, "console": true}
)

// Validate checks the configuration and returns a ValidationError when any
// rule fails. All errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Source.Root == "" {
		errs = append(errs, FieldError{
			Field:   "source.root",
			Message: "source root is required",
		})
	}
	if len(cfg.Source.Languages) == 0 {
		errs = append(errs, FieldError{
			Field:   "source.languages",
			Message: "at least one language tag is required",
		})
	}
	for i, lang := range cfg.Source.Languages {
		if lang == "" || strings.ContainsAny(lang, `/\`) {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("source.languages[%d]", i),
				Message: fmt.Sprintf("invalid language tag %q", lang),
			})
		}
	}
	if cfg.Source.MaxFileSize <= 0 {
		errs = append(errs, FieldError{
			Field:   "source.max_file_size",
			Message: "max file size must be positive",
		})
	}

	if cfg.Output.Dir == "" {
		errs = append(errs, FieldError{
			Field:   "output.dir",
			Message: "output directory is required",
		})
	}
	if cfg.Output.SQLite.Enabled && cfg.Output.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "output.sqlite.path",
			Message: "database path is required when the sqlite sink is enabled",
		})
	}

	if cfg.Limits.MaxDepth <= 0 {
		errs = append(errs, FieldError{
			Field:   "limits.max_depth",
			Message: "max depth must be positive",
		})
	}

	if !validLogLevels[cfg.Telemetry.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid level %q, must be one of debug, info, warn, error", cfg.Telemetry.Logging.Level),
		})
	}
	if !validLogFormats[cfg.Telemetry.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid format %q, must be one of json, text, console", cfg.Telemetry.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}
