// Package adml loads per-language resource files and resolves the symbolic
// tokens the definition stage leaves in place.
//
// A language is loaded as one merged string table plus the presentation
// templates of every matching resource file. Resource files are matched to
// their definition files by base name; their presentation ids are qualified
// with the defining file's target namespace so that identically named
// presentations from different vendors stay distinct.
package adml

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dooblpls/json-gpo/pkg/admx/ast"
	"github.com/dooblpls/json-gpo/pkg/admx/errors"
	"github.com/dooblpls/json-gpo/pkg/admx/namespace"
	"github.com/dooblpls/json-gpo/pkg/telemetry/logging"
)

// Resources is one language's loaded resource set: the merged string table
// and the presentation templates keyed by "namespaceURI::presentationID".
type Resources struct {
	Language      string
	Strings       StringTable
	Presentations map[string]*ast.PresentationTemplate
}

// Loader reads language resource directories for an arena.
type Loader struct {
	arena       *ast.Arena
	logger      *logging.Logger
	maxFileSize int64 // Maximum file size in bytes (default: 10MB)
}

// NewLoader creates a loader that records warnings on the arena's report.
func NewLoader(arena *ast.Arena, logger *logging.Logger) *Loader {
	return &Loader{
		arena:       arena,
		logger:      logger,
		maxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// WithMaxFileSize sets the maximum resource file size limit.
func (l *Loader) WithMaxFileSize(size int64) *Loader {
	l.maxFileSize = size
	return l
}

// LoadLanguage loads every resource file for one language tag found under
// root. Resource files live in a subdirectory named after the language tag,
// compared case-insensitively as the source convention allows.
//
// When no resource file exists for the language, ok is false and a
// missing-language warning is recorded; the caller skips the projection for
// that language rather than failing the run.
func (l *Loader) LoadLanguage(root, lang string) (*Resources, bool) {
	paths, err := l.findFiles(root, lang)
	if err != nil {
		l.warnf(errors.WarningSourceFileError, root,
			"language %s: scanning resource files failed: %v", lang, err)
		return nil, false
	}
	if len(paths) == 0 {
		l.warnf(errors.WarningMissingLanguageResources, root,
			"language %s: no resource files found, skipping this language", lang)
		return nil, false
	}

	res := &Resources{
		Language:      lang,
		Strings:       make(StringTable),
		Presentations: make(map[string]*ast.PresentationTemplate),
	}

	loaded := 0
	for _, path := range paths {
		doc, err := l.parseFile(path)
		if err != nil {
			l.warnf(errors.WarningSourceFileError, path,
				"language %s: skipping resource file: %v", lang, err)
			continue
		}
		l.merge(res, doc, path)
		loaded++
	}
	if loaded == 0 {
		l.warnf(errors.WarningMissingLanguageResources, root,
			"language %s: no resource file could be read, skipping this language", lang)
		return nil, false
	}

	l.logger.Debug("language resources loaded",
		"language", lang,
		"files", loaded,
		"strings", len(res.Strings),
		"presentations", len(res.Presentations))
	return res, true
}

// findFiles collects the resource files whose parent directory matches the
// language tag. filepath.WalkDir visits in lexical order, so the merge order
// (and therefore last-write-wins results) is deterministic.
func (l *Loader) findFiles(root, lang string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".adml") {
			return nil
		}
		if strings.EqualFold(filepath.Base(filepath.Dir(path)), lang) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func (l *Loader) parseFile(path string) (*xmlResourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access file: %w", err)
	}
	if info.Size() > l.maxFileSize {
		return nil, fmt.Errorf("file size %d exceeds maximum %d bytes", info.Size(), l.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc xmlResourceFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("XML parsing failed: %w", err)
	}
	return &doc, nil
}

// merge folds one resource file into the language set. String ids share a
// single per-language table; a collision across files is reported and the
// later file wins. Presentations are qualified by the namespace of the
// definition file sharing the resource file's base name.
func (l *Loader) merge(res *Resources, doc *xmlResourceFile, path string) {
	for _, s := range doc.Strings {
		if s.ID == "" {
			l.warnf(errors.WarningMissingIdentifier, path, "skipping string with empty id")
			continue
		}
		if _, exists := res.Strings[s.ID]; exists {
			l.warnf(errors.WarningDuplicateIdentifier, path,
				"string %q defined more than once for language %s, keeping the later definition",
				s.ID, res.Language)
		}
		res.Strings[s.ID] = s.Value
	}

	if len(doc.Presentations) == 0 {
		return
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	nsURI, ok := l.arena.FileNamespaces[base]
	if !ok {
		l.warnf(errors.WarningUnresolvedReference, path,
			"resource file %q matches no processed definition file, dropping its presentations", base)
		return
	}

	for _, p := range doc.Presentations {
		if p.ID == "" {
			l.warnf(errors.WarningMissingIdentifier, path, "skipping presentation with empty id")
			continue
		}
		key := namespace.Qualified(nsURI, p.ID)
		if _, exists := res.Presentations[key]; exists {
			l.warnf(errors.WarningDuplicateIdentifier, path,
				"presentation %q defined more than once for language %s, keeping the later definition",
				key, res.Language)
		}
		res.Presentations[key] = buildPresentation(nsURI, &p)
	}
}

func buildPresentation(nsURI string, p *xmlPresentation) *ast.PresentationTemplate {
	tmpl := &ast.PresentationTemplate{
		ID:           p.ID,
		NamespaceURI: nsURI,
	}
	for _, el := range p.Elements {
		tmpl.Elements = append(tmpl.Elements, ast.PresentationElement{
			Type:       el.Type,
			RefID:      el.RefID,
			LabelToken: el.Label,
			Default:    el.Default,
		})
	}
	return tmpl
}

func (l *Loader) warnf(warnType errors.WarningType, file string, format string, args ...any) {
	w := l.arena.Report.Addf(warnType, file, format, args...)
	l.logger.Warn(w.Message, "type", string(w.Type), "file", w.File)
}
