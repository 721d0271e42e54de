package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// FixturePost describes one post of the reference content tree.
type FixturePost struct {
	Dir       string // relative to the content root
	Key       string
	Slug      string
	Title     string
	Date      string
	Tags      string
	Body      string
	DayOfYear string
}

// Content renders the post in hakkan's header + body format.
func (p FixturePost) Content() string {
	return fmt.Sprintf("Title: %s\nDate: %s\nTags: %s\nAuthor: bear\nSlug: %s\nSummary: %s\n\n%s",
		p.Title, p.Date, p.Tags, p.Slug, p.Title, p.Body)
}

// MarchPostKey is the key of the 2014-03-01 fixture post.
const MarchPostKey = "20140301140100.test-content-2014-060-Mar-1-2014"

// MarchPostBody is the exact body of the 2014-03-01 fixture post.
const MarchPostBody = "Test Content for March 1st 2014 - paragraph one\n\nparagraph two\n"

// MarchPostHTML is the rendered body of the 2014-03-01 fixture post.
const MarchPostHTML = "<p>Test Content for March 1st 2014 - paragraph one</p>\n\n<p>paragraph two</p>\n"

// FixturePosts returns the four reference posts, listed out of date order.
func FixturePosts() []FixturePost {
	return []FixturePost{
		{
			Dir: "2014/001", Key: "20140101140100.test-content-2014-001-Jan-1-2014",
			Slug: "test-content-2014-001-Jan-1-2014", Title: "Test Content 2014 001 Jan 1 2014",
			Date: "2014-01-01 14:01:00", Tags: "mutterings", DayOfYear: "001",
			Body: "Test Content for January 1st 2014 - paragraph one\n\nparagraph two\n",
		},
		{
			Dir: "2014/060", Key: MarchPostKey,
			Slug: "test-content-2014-060-Mar-1-2014", Title: "Test Content 2014 060 Mar 1 2014",
			Date: "2014-03-01 14:01:00", Tags: "mutterings", DayOfYear: "060",
			Body: MarchPostBody,
		},
		{
			Dir: "2013/305", Key: "20131101140100.test-content-2013-305-Nov-1-2013",
			Slug: "test-content-2013-305-Nov-1-2013", Title: "Test Content 2013 305 Nov 1 2013",
			Date: "2013-11-01 14:01:00", Tags: "mutterings", DayOfYear: "305",
			Body: "Test Content for November 1st 2013 - paragraph one\n\nparagraph two\n",
		},
		{
			Dir: "2014/032", Key: "20140201140100.test-content-2014-032-Feb-1-2014",
			Slug: "test-content-2014-032-Feb-1-2014", Title: "Test Content 2014 032 Feb 1 2014",
			Date: "2014-02-01 14:01:00", Tags: "mutterings", DayOfYear: "032",
			Body: "Test Content for February 1st 2014 - paragraph one\n\nparagraph two\n",
		},
	}
}

// WriteFile writes content to root/rel, creating parent directories.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), testDirPermissions); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), testFilePermissions); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteFixtureContent writes the reference posts below root, one post per
// directory, and returns their file paths in FixturePosts order.
func WriteFixtureContent(t *testing.T, root string) []string {
	t.Helper()
	posts := FixturePosts()
	paths := make([]string, 0, len(posts))
	for _, p := range posts {
		paths = append(paths, WriteFile(t, root, filepath.Join(p.Dir, p.Slug+".md"), p.Content()))
	}
	return paths
}

// PostContent builds a minimal valid post.
func PostContent(slug, date, tags, body string) string {
	return fmt.Sprintf("Title: %s\nDate: %s\nTags: %s\nSlug: %s\n\n%s", slug, date, tags, slug, body)
}
