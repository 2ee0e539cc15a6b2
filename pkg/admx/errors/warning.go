package errors

import (
	"fmt"
	"strings"
)

// WarningType categorizes an event encountered during collection, hierarchy
// resolution, or language projection.
type WarningType string

const (
	WarningMissingIdentifier        WarningType = "missing_identifier"
	WarningDuplicateIdentifier      WarningType = "duplicate_identifier"
	WarningUnresolvedReference      WarningType = "unresolved_reference"
	WarningStructuralAmbiguity      WarningType = "structural_ambiguity"
	WarningSourceFileError          WarningType = "source_file_error"
	WarningMissingLanguageResources WarningType = "missing_language_resources"
)

// Warning records a single non-fatal event with enough context to audit the
// run afterwards. File is the source file implicated, when known.
type Warning struct {
	Type    WarningType `json:"type"`
	Message string      `json:"message"`
	File    string      `json:"file,omitempty"`
}

// Error implements the error interface.
func (w *Warning) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", w.Type, w.Message))
	if w.File != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", w.File))
	}
	return sb.String()
}
