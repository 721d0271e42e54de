// Package post parses a single hakkan content file into an immutable Post.
package post

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inful/mdfp"

	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
	"git.home.luguber.info/inful/hakkan/internal/frontmatter"
	"git.home.luguber.info/inful/hakkan/internal/markdown"
)

// DateLayout is the only accepted format of the date header.
const DateLayout = "2006-01-02 15:04:05"

// keyLayout is the zero padded timestamp prefix of a post key.
const keyLayout = "20060102150405"

// SummaryLength bounds the summary derived from the body when the header has none.
const SummaryLength = 200

var (
	ErrMissingDate = errors.New("missing date header")
	ErrBadDate     = errors.New("date header does not match YYYY-MM-DD HH:MM:SS")
	ErrMissingSlug = errors.New("missing slug header")
	ErrBadSlug     = errors.New("slug must be a single path element")
)

// Post is one parsed content file. A Post is fully populated by Load and must
// not be modified afterwards; reloading produces a new value.
type Post struct {
	Key  string
	Path string

	Title   string
	Author  string
	Slug    string
	Summary string
	Tags    []string

	Date      time.Time
	Year      string
	DayOfYear string
	URL       string

	Modified time.Time
	Created  time.Time

	// Headers are the raw header lines in file order.
	Headers []string
	// Attribs holds every header value keyed by lowercased header name.
	Attribs map[string]string

	Content     string
	HTML        string
	Fingerprint string
}

// HasTag reports whether the post carries tag.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Load reads, decodes and parses the content file at path. URLs are built from
// baseURL, which is used verbatim as a prefix.
func Load(path, baseURL string, conv markdown.Converter) (*Post, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to stat content file").
			WithContext("file", abs).
			Build()
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read content file").
			WithContext("file", abs).
			Build()
	}

	p, perr := parse(Decode(data), baseURL, conv)
	if perr != nil {
		return nil, perr.WithContext("file", abs).Build()
	}
	p.Path = abs
	p.Modified = info.ModTime()
	p.Created = createdTime(info)
	return p, nil
}

// Parse builds a Post from already decoded content. Path and file times are
// left empty.
func Parse(content, baseURL string, conv markdown.Converter) (*Post, error) {
	p, perr := parse(content, baseURL, conv)
	if perr != nil {
		return nil, perr.Build()
	}
	return p, nil
}

func parse(content, baseURL string, conv markdown.Converter) (*Post, *derrors.ErrorBuilder) {
	doc, err := frontmatter.Split(content)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryContent, "failed to split header")
	}
	fields, err := frontmatter.ParseHeader(doc.Header)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryContent, "malformed header")
	}

	attribs := make(map[string]string, len(fields))
	for _, f := range fields {
		attribs[f.Key] = f.Value
	}

	rawDate, ok := attribs["date"]
	if !ok {
		return nil, derrors.MalformedContentError("malformed header").WithCause(ErrMissingDate)
	}
	date, err := time.Parse(DateLayout, rawDate)
	if err != nil {
		return nil, derrors.MalformedContentError("malformed header").
			WithCause(fmt.Errorf("%w: %q", ErrBadDate, rawDate))
	}
	slug := attribs["slug"]
	if slug == "" {
		return nil, derrors.MalformedContentError("malformed header").WithCause(ErrMissingSlug)
	}
	if strings.ContainsAny(slug, `/\`) || slug == "." || slug == ".." {
		return nil, derrors.MalformedContentError("malformed header").
			WithCause(fmt.Errorf("%w: %q", ErrBadSlug, slug))
	}

	html, err := conv.Convert(doc.Body)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryContent, "markdown conversion failed")
	}

	p := &Post{
		Key:       date.Format(keyLayout) + "." + slug,
		Title:     attribs["title"],
		Author:    attribs["author"],
		Slug:      slug,
		Summary:   attribs["summary"],
		Tags:      SplitTags(attribs["tags"]),
		Date:      date,
		Year:      fmt.Sprintf("%04d", date.Year()),
		DayOfYear: fmt.Sprintf("%03d", date.YearDay()),
		Headers:   doc.Header,
		Attribs:   attribs,
		Content:   doc.Body,
		HTML:      html,
	}
	p.Fingerprint = mdfp.CalculateFingerprintFromParts(strings.Join(doc.Header, "\n"), doc.Body)
	p.URL = baseURL + p.Year + "/" + p.DayOfYear + "/" + p.Slug
	if p.Summary == "" {
		p.Summary = markdown.Excerpt(html, SummaryLength)
	}
	return p, nil
}

// SplitTags splits a comma separated tag list, trimming each entry and
// dropping empty ones.
func SplitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
