// Package collector walks ADMX source files and folds their definitions into
// the run arena.
//
// Each file is reduced to a partial result first, then merged into the global
// maps with an explicit duplicate policy: supported-on definitions keep the
// first occurrence, categories and policies keep the last. Definitions
// without a name are skipped. Every skip and overwrite is recorded in the run
// report; none of them aborts the run.
package collector

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dooblpls/json-gpo/pkg/admx/ast"
	"github.com/dooblpls/json-gpo/pkg/admx/errors"
	"github.com/dooblpls/json-gpo/pkg/admx/namespace"
	"github.com/dooblpls/json-gpo/pkg/admx/parser"
	"github.com/dooblpls/json-gpo/pkg/telemetry/logging"
)

// Collector extracts definitions from ADMX files into an arena.
type Collector struct {
	arena  *ast.Arena
	parser *parser.Parser
	logger *logging.Logger
}

// New creates a collector writing into the given arena.
func New(arena *ast.Arena, logger *logging.Logger) *Collector {
	return &Collector{
		arena:  arena,
		parser: parser.NewParser(),
		logger: logger,
	}
}

// WithParser replaces the default parser, e.g. to lower the file size limit.
func (c *Collector) WithParser(p *parser.Parser) *Collector {
	c.parser = p
	return c
}

// CollectDir walks the source root and collects every *.admx file found.
// It returns the number of ADMX files encountered; the caller decides whether
// an empty root is fatal. Individual file failures are recorded as warnings
// and do not stop the walk.
func (c *Collector) CollectDir(root string) (int, error) {
	found := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".admx") {
			return nil
		}
		found++
		c.CollectFile(path)
		return nil
	})
	if err != nil {
		return found, err
	}
	return found, nil
}

// CollectFile parses and collects a single ADMX file. It returns false when
// the file was skipped (unreadable, malformed, or missing its target
// namespace); the skip is recorded in the report.
func (c *Collector) CollectFile(path string) bool {
	file, err := c.parser.ParseFile(path)
	if err != nil {
		c.warnf(errors.WarningSourceFileError, path, "file skipped: %v", err)
		return false
	}
	return c.Collect(file)
}

// Collect folds an already-parsed file into the arena.
func (c *Collector) Collect(file *parser.File) bool {
	if file.TargetNamespace == "" {
		c.warnf(errors.WarningSourceFileError, file.Path,
			"file skipped: no target namespace declared")
		return false
	}

	result := c.buildFileResult(file)
	c.merge(result)
	c.logger.Debug("file collected",
		"file", file.Path,
		"namespace", file.TargetNamespace,
		"categories", len(result.categories),
		"policies", len(result.policies))
	return true
}

// fileResult is the partial result of one source file, built in isolation
// and merged into the arena afterwards.
type fileResult struct {
	path        string
	baseName    string
	prefixes    *namespace.PrefixMap
	supportedOn []*ast.SupportedOnDefinition
	categories  []*ast.Category
	policies    []*ast.Policy
}

func (c *Collector) buildFileResult(file *parser.File) *fileResult {
	prefixes := namespace.NewPrefixMap(file.TargetNamespace)
	if file.TargetPrefix != "" {
		// A file may reference its own definitions through its own prefix.
		prefixes.Add(file.TargetPrefix, file.TargetNamespace)
	}
	for _, u := range file.Using {
		prefixes.Add(u.Prefix, u.URI)
	}

	result := &fileResult{
		path:     file.Path,
		baseName: baseName(file.Path),
		prefixes: prefixes,
	}

	for _, def := range file.SupportedOn {
		if strings.TrimSpace(def.Name) == "" {
			c.warnf(errors.WarningMissingIdentifier, file.Path,
				"supported-on definition without a name skipped")
			continue
		}
		result.supportedOn = append(result.supportedOn, &ast.SupportedOnDefinition{
			Name:             def.Name,
			DisplayNameToken: def.DisplayName,
			SourceFile:       file.Path,
		})
	}

	for _, def := range file.Categories {
		if strings.TrimSpace(def.Name) == "" {
			c.warnf(errors.WarningMissingIdentifier, file.Path,
				"category without a name skipped")
			continue
		}
		cat := &ast.Category{
			UniqueID:         namespace.Qualified(file.TargetNamespace, def.Name),
			Name:             def.Name,
			NamespaceURI:     file.TargetNamespace,
			DisplayNameToken: def.DisplayName,
			ParentRefRaw:     def.ParentRef,
			SourceFile:       file.Path,
		}
		if def.ParentRef != "" {
			resolved, ok := prefixes.Resolve(def.ParentRef)
			if ok {
				cat.ParentRefResolved = resolved
			} else {
				c.warnf(errors.WarningUnresolvedReference, file.Path,
					"category %q: parent reference %q uses an undeclared prefix", cat.UniqueID, def.ParentRef)
			}
		}
		result.categories = append(result.categories, cat)
	}

	for _, def := range file.Policies {
		if strings.TrimSpace(def.Name) == "" {
			c.warnf(errors.WarningMissingIdentifier, file.Path,
				"policy without a name skipped")
			continue
		}
		pol := &ast.Policy{
			UniqueID:             namespace.Qualified(file.TargetNamespace, def.Name),
			Name:                 def.Name,
			NamespaceURI:         file.TargetNamespace,
			DisplayNameToken:     def.DisplayName,
			ExplainTextToken:     def.ExplainText,
			SupportedOnRef:       def.SupportedOnRef,
			PresentationToken:    def.Presentation,
			ParentCategoryRefRaw: def.ParentRef,
			SourceFile:           file.Path,
		}
		class, ok := ast.ParsePolicyClass(def.Class)
		pol.Class = class
		if !ok {
			c.warnf(errors.WarningStructuralAmbiguity, file.Path,
				"policy %q: unknown class %q, treating as Both", pol.UniqueID, def.Class)
		}
		pol.Registry = c.buildRegistry(&def, pol.UniqueID, file.Path)
		result.policies = append(result.policies, pol)
	}

	return result
}

// baseName strips the directory and extension from a source path. Language
// resource files are matched to definition files by this name.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// warnf records a warning in the report and logs it.
func (c *Collector) warnf(warnType errors.WarningType, file string, format string, args ...any) {
	w := c.arena.Report.Addf(warnType, file, format, args...)
	c.logger.Warn(w.Message, "type", string(w.Type), "file", w.File)
}
