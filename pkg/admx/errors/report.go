package errors

import (
	"fmt"
	"strings"
)

// Report accumulates warnings over one conversion run. A fresh Report is
// created per run and passed explicitly through the pipeline; warnings are
// never fatal and never interrupt processing.
type Report struct {
	Warnings []*Warning
}

// NewReport creates a new empty report.
func NewReport() *Report {
	return &Report{
		Warnings: make([]*Warning, 0),
	}
}

// Add appends a warning to the report.
func (r *Report) Add(w *Warning) {
	r.Warnings = append(r.Warnings, w)
}

// Addf creates and appends a warning with a formatted message.
func (r *Report) Addf(warnType WarningType, file string, format string, args ...any) *Warning {
	w := &Warning{
		Type:    warnType,
		Message: fmt.Sprintf(format, args...),
		File:    file,
	}
	r.Add(w)
	return w
}

// HasWarnings returns true if the report contains any warnings.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Count returns the number of warnings in the report.
func (r *Report) Count() int {
	return len(r.Warnings)
}

// ByType returns all warnings of the given type.
func (r *Report) ByType(warnType WarningType) []*Warning {
	var result []*Warning
	for _, w := range r.Warnings {
		if w.Type == warnType {
			result = append(result, w)
		}
	}
	return result
}

// HasType returns true if the report contains at least one warning of the
// given type.
func (r *Report) HasType(warnType WarningType) bool {
	for _, w := range r.Warnings {
		if w.Type == warnType {
			return true
		}
	}
	return false
}

// CountsByType returns the number of warnings per type.
func (r *Report) CountsByType() map[WarningType]int {
	counts := make(map[WarningType]int)
	for _, w := range r.Warnings {
		counts[w.Type]++
	}
	return counts
}

// Summary returns a human-readable end-of-run summary of all warnings.
func (r *Report) Summary() string {
	if !r.HasWarnings() {
		return "no warnings"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d warning(s):\n", r.Count()))
	for _, w := range r.Warnings {
		sb.WriteString("  ")
		sb.WriteString(w.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Error implements the error interface.
func (r *Report) Error() string {
	return r.Summary()
}

// ToError returns nil if the report is empty, otherwise the report itself.
func (r *Report) ToError() error {
	if !r.HasWarnings() {
		return nil
	}
	return r
}
