// Package namespace resolves possibly-prefixed definition names against the
// namespace declarations of a single source file.
//
// Every ADMX file declares one target namespace and may import others under
// short prefixes ("using" declarations). A reference such as "windows:System"
// is resolved through the importing file's prefix map; an unprefixed
// reference belongs to the file's own target namespace.
package namespace

import "strings"

// Separator joins a namespace URI and a local name into a globally unique
// identifier. The output JSON uses the same convention, so changing it is a
// breaking change for consumers.
const Separator = "::"

// Qualified returns the namespace-qualified id for a local name.
func Qualified(uri, local string) string {
	return uri + Separator + local
}

// PrefixMap holds the namespace declarations of one source file: its target
// namespace plus any imported namespaces keyed by prefix. A PrefixMap is
// built once per file during collection and consulted again during policy
// association, which may need to resolve cross-namespace references long
// after the file itself was processed.
type PrefixMap struct {
	// Target is the file's own namespace URI. Unprefixed names resolve here.
	Target string

	// Prefixes maps "using" prefixes to imported namespace URIs.
	Prefixes map[string]string
}

// NewPrefixMap creates a prefix map for a file with the given target
// namespace URI.
func NewPrefixMap(target string) *PrefixMap {
	return &PrefixMap{
		Target:   target,
		Prefixes: make(map[string]string),
	}
}

// Add registers an imported namespace under a prefix. A repeated prefix
// overwrites the earlier import.
func (m *PrefixMap) Add(prefix, uri string) {
	m.Prefixes[prefix] = uri
}

// Resolve turns a possibly-prefixed name into a namespace-qualified id.
//
// "prefix:local" resolves through the prefix map; an unknown prefix returns
// the name unchanged with ok=false, and the caller must treat the value as an
// unresolved reference. A bare name resolves against the target namespace.
func (m *PrefixMap) Resolve(name string) (string, bool) {
	prefix, local, found := strings.Cut(name, ":")
	if !found {
		return Qualified(m.Target, name), true
	}

	uri, ok := m.Prefixes[prefix]
	if !ok {
		return name, false
	}
	return Qualified(uri, local), true
}
