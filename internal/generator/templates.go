package generator

import (
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/hakkan/internal/config"
	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
	"git.home.luguber.info/inful/hakkan/internal/logfields"
)

// Template kinds, matching the keys of the templates config block.
const (
	TemplateIndex   = "index"
	TemplateArticle = "article"
	TemplateArchive = "archive"
	TemplateTags    = "tags"
)

// partialPattern matches shared template files parsed alongside every page.
const partialPattern = "_*.html"

// funcMap is available to every template.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time, layout string) string { return t.Format(layout) },
		"join":       strings.Join,
		"lower":      strings.ToLower,
	}
}

// loadTemplates parses the four page templates. Each page is parsed together
// with every partial in the template directory so pages can share blocks.
func loadTemplates(cfg *config.Config) (map[string]*template.Template, error) {
	partials, err := filepath.Glob(filepath.Join(cfg.TemplateDir, partialPattern))
	if err != nil {
		return nil, err
	}

	pages := map[string]string{
		TemplateIndex:   cfg.Templates.Index,
		TemplateArticle: cfg.Templates.Article,
		TemplateArchive: cfg.Templates.Archive,
		TemplateTags:    cfg.Templates.Tags,
	}
	out := make(map[string]*template.Template, len(pages))
	for kind, name := range pages {
		path := filepath.Join(cfg.TemplateDir, name)
		if _, err := os.Stat(path); err != nil {
			return nil, derrors.TemplateError("template file not found").
				WithCause(err).
				WithContext("template", kind).
				WithContext("file", path).
				Build()
		}
		files := append(append([]string{}, partials...), path)
		t, err := template.New(filepath.Base(path)).Funcs(funcMap()).ParseFiles(files...)
		if err != nil {
			return nil, derrors.TemplateError("failed to parse template").
				WithCause(err).
				WithContext("template", kind).
				WithContext("file", path).
				Build()
		}
		out[kind] = t
	}
	return out, nil
}

// execute renders a page template into memory.
func execute(t *template.Template, kind string, data any) ([]byte, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return nil, derrors.TemplateError("failed to render template").
			WithCause(err).
			WithContext("template", kind).
			Build()
	}
	return []byte(b.String()), nil
}

// writePage writes a rendered page, creating parent directories as needed.
// A static file already at path is replaced and reported.
func writePage(path string, data []byte) error {
	if _, err := os.Lstat(path); err == nil {
		slog.Warn("Generated page replaces static file", logfields.Path(path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create page directory").
			WithContext("file", path).
			Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write page").
			WithContext("file", path).
			Build()
	}
	return nil
}

func pagePath(root string, parts ...string) string {
	return filepath.Join(append([]string{root}, parts...)...)
}
