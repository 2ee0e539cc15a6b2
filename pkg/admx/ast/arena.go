package ast

import (
	"github.com/dooblpls/json-gpo/pkg/admx/errors"
	"github.com/dooblpls/json-gpo/pkg/admx/namespace"
)

// Arena is the graph-construction state for one conversion run: the global
// definition maps, the per-file namespace declarations needed for late
// reference resolution, and the warning report. Each run owns a fresh Arena;
// nothing here is ambient or shared between runs.
//
// After collection and hierarchy resolution the Arena is read-only. Language
// projections only read from it, so they are free of shared-mutation hazards.
type Arena struct {
	SupportedOn map[string]*SupportedOnDefinition // keyed by bare name
	Categories  map[string]*Category              // keyed by namespace-qualified id
	Policies    map[string]*Policy                // keyed by namespace-qualified id

	// FilePrefixes keeps each processed file's prefix map, keyed by source
	// path. Policy association needs the defining file's map, which may
	// differ from the policy's own namespace under cross-namespace refs.
	FilePrefixes map[string]*namespace.PrefixMap

	// FileNamespaces maps a source file's base name (without extension) to
	// its target namespace URI. Language resource files are matched to their
	// definition files by base name, and their presentation ids are
	// qualified through this map.
	FileNamespaces map[string]string

	Report *errors.Report
}

// NewArena creates an empty arena with a fresh report.
func NewArena() *Arena {
	return &Arena{
		SupportedOn:    make(map[string]*SupportedOnDefinition),
		Categories:     make(map[string]*Category),
		Policies:       make(map[string]*Policy),
		FilePrefixes:   make(map[string]*namespace.PrefixMap),
		FileNamespaces: make(map[string]string),
		Report:         errors.NewReport(),
	}
}

// ResolveSupportedOn returns the display token of the referenced supported-on
// definition, or the raw reference itself when the definition is unknown.
// Either way the result is still a symbolic token that the per-language stage
// resolves to text.
func (a *Arena) ResolveSupportedOn(ref string) string {
	if def, ok := a.SupportedOn[ref]; ok {
		return def.DisplayNameToken
	}
	return ref
}
