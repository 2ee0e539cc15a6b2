// Package hierarchy links collected categories and policies into a forest.
//
// Linking runs as independent, idempotent passes over the arena: category
// parent linking, cycle breaking, and policy association. Dangling parent
// references degrade to top-level; a true parent cycle is broken at the first
// repeated node and reported as a structural ambiguity.
package hierarchy

import (
	"sort"

	"github.com/dooblpls/json-gpo/pkg/admx/ast"
	"github.com/dooblpls/json-gpo/pkg/admx/errors"
	"github.com/dooblpls/json-gpo/pkg/telemetry/logging"
)

// Resolver links the category/policy graph of one arena.
type Resolver struct {
	arena    *ast.Arena
	logger   *logging.Logger
	maxDepth int // Maximum category nesting depth (default: 20)
}

// New creates a resolver for the given arena.
func New(arena *ast.Arena, logger *logging.Logger) *Resolver {
	return &Resolver{
		arena:    arena,
		logger:   logger,
		maxDepth: 20,
	}
}

// WithMaxDepth sets the maximum category nesting depth.
func (r *Resolver) WithMaxDepth(depth int) *Resolver {
	if depth > 0 {
		r.maxDepth = depth
	}
	return r
}

// Resolve runs all linking passes in order.
func (r *Resolver) Resolve() {
	r.LinkCategories()
	r.BreakCycles()
	r.AssociatePolicies()
}

// LinkCategories sets parent/children links for every category whose resolved
// parent exists in the arena. A declared parent that cannot be found leaves
// the category top-level with a warning. The pass rebuilds all child lists
// from scratch, so rerunning it cannot duplicate links.
func (r *Resolver) LinkCategories() {
	for _, cat := range r.arena.Categories {
		cat.ParentID = ""
		cat.ChildrenIDs = nil
	}

	for id, cat := range r.arena.Categories {
		if cat.ParentRefResolved == "" {
			continue
		}
		parent, ok := r.arena.Categories[cat.ParentRefResolved]
		if !ok {
			r.warnf(errors.WarningUnresolvedReference, cat.SourceFile,
				"category %q: parent %q not found, treating as top-level", id, cat.ParentRefResolved)
			continue
		}
		cat.ParentID = parent.UniqueID
		parent.ChildrenIDs = append(parent.ChildrenIDs, id)
	}

	for _, cat := range r.arena.Categories {
		sort.Strings(cat.ChildrenIDs)
	}
}

// BreakCycles walks every category's parent chain with a visited set and
// breaks any cycle at the first repeated node. The source format does not
// guard against cycles, so a malformed template set must not hang or
// overflow the projector.
func (r *Resolver) BreakCycles() {
	for start := range r.arena.Categories {
		seen := make(map[string]bool)
		depth := 0

		for current := start; current != ""; {
			if seen[current] {
				r.cutParent(current)
				r.warnf(errors.WarningStructuralAmbiguity, r.arena.Categories[current].SourceFile,
					"category parent cycle detected at %q, breaking the cycle there", current)
				break
			}
			seen[current] = true

			depth++
			if depth > r.maxDepth {
				r.warnf(errors.WarningStructuralAmbiguity, r.arena.Categories[current].SourceFile,
					"category %q exceeds maximum nesting depth %d", start, r.maxDepth)
				break
			}
			current = r.arena.Categories[current].ParentID
		}
	}
}

// cutParent detaches a category from its parent, making it top-level.
func (r *Resolver) cutParent(id string) {
	cat := r.arena.Categories[id]
	parent, ok := r.arena.Categories[cat.ParentID]
	if ok {
		children := parent.ChildrenIDs[:0]
		for _, child := range parent.ChildrenIDs {
			if child != id {
				children = append(children, child)
			}
		}
		parent.ChildrenIDs = children
	}
	cat.ParentID = ""
}

// AssociatePolicies attaches every policy to its parent category. The
// reference is resolved against the prefix map of the file the policy was
// defined in, which may differ from the policy's own namespace under
// cross-namespace references. Unresolvable references leave the policy
// orphaned with a warning; a policy with no declared parent stays orphaned
// silently.
func (r *Resolver) AssociatePolicies() {
	for _, cat := range r.arena.Categories {
		cat.PolicyIDs = nil
	}

	for id, pol := range r.arena.Policies {
		pol.CategoryID = ""
		if pol.ParentCategoryRefRaw == "" {
			continue
		}

		prefixes, ok := r.arena.FilePrefixes[pol.SourceFile]
		if !ok {
			r.warnf(errors.WarningUnresolvedReference, pol.SourceFile,
				"policy %q: no namespace declarations retained for its file", id)
			continue
		}

		resolved, ok := prefixes.Resolve(pol.ParentCategoryRefRaw)
		if !ok {
			r.warnf(errors.WarningUnresolvedReference, pol.SourceFile,
				"policy %q: parent reference %q uses an undeclared prefix", id, pol.ParentCategoryRefRaw)
			continue
		}

		parent, ok := r.arena.Categories[resolved]
		if !ok {
			r.warnf(errors.WarningUnresolvedReference, pol.SourceFile,
				"policy %q: parent category %q not found", id, resolved)
			continue
		}

		pol.CategoryID = parent.UniqueID
		parent.PolicyIDs = append(parent.PolicyIDs, id)
	}

	for _, cat := range r.arena.Categories {
		sort.Strings(cat.PolicyIDs)
	}
}

func (r *Resolver) warnf(warnType errors.WarningType, file string, format string, args ...any) {
	w := r.arena.Report.Addf(warnType, file, format, args...)
	r.logger.Warn(w.Message, "type", string(w.Type), "file", w.File)
}
