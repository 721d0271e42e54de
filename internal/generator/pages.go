package generator

import (
	"html/template"
	"maps"
	"time"

	"git.home.luguber.info/inful/hakkan/internal/config"
	"git.home.luguber.info/inful/hakkan/internal/post"
	"git.home.luguber.info/inful/hakkan/internal/site"
)

// SiteContext is the site wide part of every page context.
type SiteContext struct {
	Title   string
	BaseURL string
	Meta    map[string]any
}

// PostView is the template facing copy of a post.
type PostView struct {
	Key       string
	Title     string
	Author    string
	Slug      string
	Summary   string
	Tags      []string
	Date      time.Time
	Year      string
	DayOfYear string
	URL       string
	Modified  time.Time
	Created   time.Time
	Attribs   map[string]string
	// HTML is the rendered markdown body. It is trusted and not escaped.
	HTML      template.HTML
	Frontpage bool
}

// ArticlePage is the context of a single post page.
type ArticlePage struct {
	Site      SiteContext
	PageTitle string
	Post      PostView
}

// IndexPage is the context of the front page.
type IndexPage struct {
	Site      SiteContext
	PageTitle string
	Posts     []PostView
}

// TagsPage is the context of the tag listing. Tags maps every entry of
// TagList to its posts, most recent first.
type TagsPage struct {
	Site      SiteContext
	PageTitle string
	TagList   []string
	Tags      map[string][]PostView
	TagKeys   map[string][]string
}

// ArchivePage is the context of the archive. YearList is most recent first,
// posts inside a year oldest first.
type ArchivePage struct {
	Site      SiteContext
	PageTitle string
	YearList  []string
	Years     map[string][]PostView
}

func newSiteContext(cfg *config.Config) SiteContext {
	return SiteContext{
		Title:   cfg.Title,
		BaseURL: cfg.BaseURL,
		Meta:    maps.Clone(cfg.Meta),
	}
}

func newPostView(p *post.Post, frontpage bool) PostView {
	return PostView{
		Key:       p.Key,
		Title:     p.Title,
		Author:    p.Author,
		Slug:      p.Slug,
		Summary:   p.Summary,
		Tags:      append([]string(nil), p.Tags...),
		Date:      p.Date,
		Year:      p.Year,
		DayOfYear: p.DayOfYear,
		URL:       p.URL,
		Modified:  p.Modified,
		Created:   p.Created,
		Attribs:   maps.Clone(p.Attribs),
		HTML:      template.HTML(p.HTML), //nolint:gosec // rendered by our own markdown converter
		Frontpage: frontpage,
	}
}

func (bs *BuildState) views(keys []string) []PostView {
	posts := bs.Index.Resolve(keys)
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostView(p, bs.frontSet[p.Key]))
	}
	return out
}

func articlePageTitle(cfg *config.Config, p *post.Post) string {
	if p.Title == "" {
		return cfg.Title
	}
	if cfg.Title == "" {
		return p.Title
	}
	return p.Title + " :: " + cfg.Title
}

func newIndexPage(bs *BuildState) IndexPage {
	cfg := bs.Generator.cfg
	return IndexPage{
		Site:      newSiteContext(cfg),
		PageTitle: cfg.Title,
		Posts:     bs.views(bs.FrontPage),
	}
}

func newTagsPage(bs *BuildState) TagsPage {
	cfg := bs.Generator.cfg
	page := TagsPage{
		Site:      newSiteContext(cfg),
		PageTitle: cfg.Title + " :: Tags",
		TagList:   bs.Index.Tags(),
		Tags:      make(map[string][]PostView),
		TagKeys:   make(map[string][]string),
	}
	for _, tag := range page.TagList {
		keys := bs.Index.TagKeys(tag)
		page.TagKeys[tag] = keys
		page.Tags[tag] = bs.views(keys)
	}
	return page
}

func newArchivePage(bs *BuildState) ArchivePage {
	cfg := bs.Generator.cfg
	page := ArchivePage{
		Site:      newSiteContext(cfg),
		PageTitle: cfg.Title + " :: Archives",
		YearList:  bs.Index.Years(),
		Years:     make(map[string][]PostView),
	}
	for _, year := range page.YearList {
		page.Years[year] = bs.views(bs.Index.YearKeys(year))
	}
	return page
}

// SelectFrontPage returns the n most recent post keys, most recent first.
func SelectFrontPage(idx *site.Index, n int) []string {
	keys := idx.KeysDescending()
	if n < 0 {
		n = 0
	}
	if n < len(keys) {
		keys = keys[:n]
	}
	return keys
}
