// Package ast defines the language-neutral data model produced by definition
// collection and hierarchy resolution.
//
// All entities are keyed by namespace-qualified ids of the form
// "namespaceURI::localName", which disambiguates identically-named
// definitions from different source files. Display text is carried as
// symbolic tokens (e.g. "$(string.X)") and stays unresolved until a language
// projection runs.
//
// The Arena holds the global maps for one conversion run. It is built once,
// then treated as immutable input by every per-language projection.
package ast
