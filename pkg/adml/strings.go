package adml

import "regexp"

// stringRefPattern matches a symbolic string reference of the exact form
// "$(string.ID)".
var stringRefPattern = regexp.MustCompile(`^\$\(string\.([A-Za-z0-9_.-]+)\)$`)

// vendorSupportedPattern matches a vendor-prefixed supported-on token such as
// "windows:SUPPORTED_Win10". The prefix is stripped and the remainder looked
// up like a plain string id.
var vendorSupportedPattern = regexp.MustCompile(`^[A-Za-z0-9_]+:(SUPPORTED_[A-Za-z0-9_.-]+)$`)

// StringTable maps string ids to literal text for one language. There is no
// cross-language fallback; each projection owns its own table.
type StringTable map[string]string

// Resolve turns a symbolic token into display text.
//
// "$(string.ID)" and vendor-prefixed supported-on tokens resolve through the
// table; on a miss the fallback is returned when given, otherwise the token
// verbatim. Any other token is literal text and is returned unchanged, which
// makes Resolve idempotent: resolving an already-resolved string is a no-op.
func (t StringTable) Resolve(token string, fallback ...string) string {
	if m := stringRefPattern.FindStringSubmatch(token); m != nil {
		return t.lookup(m[1], token, fallback)
	}
	if m := vendorSupportedPattern.FindStringSubmatch(token); m != nil {
		return t.lookup(m[1], token, fallback)
	}
	return token
}

func (t StringTable) lookup(id, token string, fallback []string) string {
	if text, ok := t[id]; ok {
		return text
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return token
}

// presentationRefPattern matches "$(presentation.ID)".
var presentationRefPattern = regexp.MustCompile(`^\$\(presentation\.([A-Za-z0-9_.-]+)\)$`)

// ParsePresentationRef extracts the presentation id out of a
// "$(presentation.ID)" token. ok is false for any other token.
func ParsePresentationRef(token string) (string, bool) {
	m := presentationRefPattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	return m[1], true
}
