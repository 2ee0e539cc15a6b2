// Package output writes projected language sets to their sinks: one JSON
// document per language, and optionally a SQLite database holding every
// language for downstream querying.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dooblpls/json-gpo/pkg/admx/errors"
	"github.com/dooblpls/json-gpo/pkg/projector"
	"github.com/dooblpls/json-gpo/pkg/telemetry/logging"
)

// JSONWriter writes one <language>.json file per projected set.
type JSONWriter struct {
	dir      string
	report   *errors.Report
	logger   *logging.Logger
	maxDepth int // Maximum category ancestry depth checked before writing (default: 20)
}

// NewJSONWriter creates a writer targeting the given output directory.
func NewJSONWriter(dir string, report *errors.Report, logger *logging.Logger) *JSONWriter {
	return &JSONWriter{
		dir:      dir,
		report:   report,
		logger:   logger,
		maxDepth: 20,
	}
}

// WithMaxDepth sets the ancestry depth limit used by the pre-write check.
func (w *JSONWriter) WithMaxDepth(depth int) *JSONWriter {
	if depth > 0 {
		w.maxDepth = depth
	}
	return w
}

// Write serializes one language set to <dir>/<language>.json and returns the
// written path. The records are flat, so an over-deep ancestry chain is
// reported but never truncated.
func (w *JSONWriter) Write(set *projector.LanguageSet) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	w.checkDepth(set)

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize language set: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(w.dir, set.Language+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	w.logger.Info("language set written",
		"language", set.Language,
		"path", path,
		"bytes", len(data))
	return path, nil
}

// checkDepth walks every category's parent chain and reports chains deeper
// than the limit. The chain is bounded by the set size, so the walk cannot
// loop even on a malformed set.
func (w *JSONWriter) checkDepth(set *projector.LanguageSet) {
	parents := make(map[string]string, len(set.AllCategories))
	for _, cat := range set.AllCategories {
		parents[cat.ID] = cat.Parent
	}

	for _, cat := range set.AllCategories {
		depth := 0
		for current := cat.ID; current != "" && current != projector.RootCategoryID; current = parents[current] {
			depth++
			if depth > w.maxDepth {
				w.warnf("category %q exceeds maximum ancestry depth %d", cat.ID, w.maxDepth)
				break
			}
		}
	}
}

func (w *JSONWriter) warnf(format string, args ...any) {
	warn := w.report.Addf(errors.WarningStructuralAmbiguity, w.dir, format, args...)
	w.logger.Warn(warn.Message, "type", string(warn.Type))
}
