package testing

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/hakkan/internal/config"
)

// Default page templates. They print enough of each page context for tests to
// assert ordering and cross references.
const (
	HeadPartial = `{{define "head"}}<head><title>{{.PageTitle}}</title></head>{{end}}`

	IndexTemplate = `<html>{{template "head" .}}<body>
{{range .Posts}}<article data-key="{{.Key}}" data-frontpage="{{.Frontpage}}"><a href="{{.URL}}.html">{{.Title}}</a>{{.HTML}}</article>
{{end}}</body></html>
`
	ArticleTemplate = `<html>{{template "head" .}}<body>
<h1>{{.Post.Title}}</h1><time>{{formatDate .Post.Date "2006-01-02"}}</time>
<p class="tags">{{join .Post.Tags ", "}}</p>
{{.Post.HTML}}</body></html>
`
	TagsTemplate = `<html>{{template "head" .}}<body>
{{range .TagList}}<h2>{{.}}</h2>
{{range index $.Tags .}}<li data-key="{{.Key}}">{{.Title}}</li>
{{end}}{{end}}</body></html>
`
	ArchiveTemplate = `<html>{{template "head" .}}<body>
{{range .YearList}}<h2>{{.}}</h2>
{{range index $.Years .}}<li data-key="{{.Key}}">{{.Title}}</li>
{{end}}{{end}}</body></html>
`
)

// SiteBuilder lays out a complete site (content, templates, static files and
// config) in a temporary directory.
type SiteBuilder struct {
	t      *testing.T
	root   string
	config *config.Config
}

// NewSiteBuilder creates the directory skeleton and default templates.
func NewSiteBuilder(t *testing.T) *SiteBuilder {
	t.Helper()
	root := t.TempDir()
	sb := &SiteBuilder{
		t:    t,
		root: root,
		config: &config.Config{
			PostsDir:    filepath.Join(root, "posts"),
			OutputDir:   filepath.Join(root, "site"),
			StaticDir:   filepath.Join(root, "static"),
			TemplateDir: filepath.Join(root, "templates"),
			BaseURL:     "/bearlog/",
			Title:       "Bear's Log",
			IndexCount:  config.DefaultIndexCount,
			Templates: config.Templates{
				Index:   "index.html",
				Article: "article.html",
				Archive: "archive.html",
				Tags:    "tags.html",
			},
			Meta:  map[string]any{"author": "bear"},
			Build: config.BuildConfig{Workers: 2},
		},
	}
	for _, d := range []string{sb.config.PostsDir, sb.config.StaticDir, sb.config.TemplateDir} {
		if err := os.MkdirAll(d, testDirPermissions); err != nil {
			t.Fatalf("Failed to create %s: %v", d, err)
		}
	}
	sb.WithTemplate("_head.html", HeadPartial).
		WithTemplate("index.html", IndexTemplate).
		WithTemplate("article.html", ArticleTemplate).
		WithTemplate("tags.html", TagsTemplate).
		WithTemplate("archive.html", ArchiveTemplate)
	return sb
}

// Root returns the temporary site directory.
func (sb *SiteBuilder) Root() string { return sb.root }

// WithTitle sets the site title.
func (sb *SiteBuilder) WithTitle(title string) *SiteBuilder {
	sb.config.Title = title
	return sb
}

// WithIndexCount sets the front page size.
func (sb *SiteBuilder) WithIndexCount(n int) *SiteBuilder {
	sb.config.IndexCount = n
	return sb
}

// WithFixturePosts writes the four reference posts.
func (sb *SiteBuilder) WithFixturePosts() *SiteBuilder {
	WriteFixtureContent(sb.t, sb.config.PostsDir)
	return sb
}

// WithPost writes a content file relative to the posts directory.
func (sb *SiteBuilder) WithPost(rel, content string) *SiteBuilder {
	WriteFile(sb.t, sb.config.PostsDir, rel, content)
	return sb
}

// WithTemplate writes a template file.
func (sb *SiteBuilder) WithTemplate(name, content string) *SiteBuilder {
	WriteFile(sb.t, sb.config.TemplateDir, name, content)
	return sb
}

// WithStaticFile writes a file below the static directory.
func (sb *SiteBuilder) WithStaticFile(rel, content string) *SiteBuilder {
	WriteFile(sb.t, sb.config.StaticDir, rel, content)
	return sb
}

// Build returns the configuration.
func (sb *SiteBuilder) Build() *config.Config {
	return sb.config
}

// BuildAndSave writes the configuration as YAML and returns its path.
func (sb *SiteBuilder) BuildAndSave(name string) string {
	sb.t.Helper()
	data, err := yaml.Marshal(sb.config)
	if err != nil {
		sb.t.Fatalf("Failed to marshal config: %v", err)
	}
	path := filepath.Join(sb.root, name)
	if err := os.WriteFile(path, data, testFilePermissions); err != nil {
		sb.t.Fatalf("Failed to save config to %s: %v", path, err)
	}
	return path
}
