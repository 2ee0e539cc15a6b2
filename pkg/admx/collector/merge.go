package collector

import (
	"github.com/dooblpls/json-gpo/pkg/admx/errors"
)

// merge folds a per-file partial result into the arena's global maps. The
// duplicate policy lives here, in one auditable place:
//
//   - supported-on definitions: first definition wins (source convention)
//   - categories and policies: last definition wins
//
// Every duplicate is recorded with both files implicated.
func (c *Collector) merge(result *fileResult) {
	a := c.arena

	for _, def := range result.supportedOn {
		if existing, ok := a.SupportedOn[def.Name]; ok {
			c.warnf(errors.WarningDuplicateIdentifier, result.path,
				"supported-on definition %q already defined in %s, keeping the first",
				def.Name, existing.SourceFile)
			continue
		}
		a.SupportedOn[def.Name] = def
	}

	for _, cat := range result.categories {
		if existing, ok := a.Categories[cat.UniqueID]; ok {
			c.warnf(errors.WarningDuplicateIdentifier, result.path,
				"category %q already defined in %s, overwriting",
				cat.UniqueID, existing.SourceFile)
		}
		a.Categories[cat.UniqueID] = cat
	}

	for _, pol := range result.policies {
		if existing, ok := a.Policies[pol.UniqueID]; ok {
			c.warnf(errors.WarningDuplicateIdentifier, result.path,
				"policy %q already defined in %s, overwriting",
				pol.UniqueID, existing.SourceFile)
		}
		a.Policies[pol.UniqueID] = pol
	}

	a.FilePrefixes[result.path] = result.prefixes
	a.FileNamespaces[result.baseName] = result.prefixes.Target
}
