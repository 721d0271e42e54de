package site

import (
	"slices"

	"git.home.luguber.info/inful/hakkan/internal/post"
)

// Index is the immutable aggregate of every post on a site plus its tag and
// year lookups. Every key referenced by a tag or year bucket exists in the
// post set. Accessors return fresh slices, so callers may sort or trim them.
//
// Posts returned by the index are shared and must be treated as read-only.
type Index struct {
	posts map[string]*post.Post
	files map[string]string
	tags  map[string][]string // keys sorted descending
	years map[string][]string // keys sorted ascending

	keys     []string
	tagNames []string
	yearList []string
}

func newIndex(posts []*post.Post) *Index {
	idx := &Index{
		posts: make(map[string]*post.Post, len(posts)),
		files: make(map[string]string, len(posts)),
		tags:  make(map[string][]string),
		years: make(map[string][]string),
	}
	for _, p := range posts {
		idx.posts[p.Key] = p
		if p.Path != "" {
			idx.files[p.Path] = p.Key
		}
		for _, t := range p.Tags {
			if !slices.Contains(idx.tags[t], p.Key) {
				idx.tags[t] = append(idx.tags[t], p.Key)
			}
		}
		idx.years[p.Year] = append(idx.years[p.Year], p.Key)
	}

	idx.keys = make([]string, 0, len(idx.posts))
	for k := range idx.posts {
		idx.keys = append(idx.keys, k)
	}
	slices.Sort(idx.keys)

	for t, keys := range idx.tags {
		slices.Sort(keys)
		slices.Reverse(keys)
		idx.tagNames = append(idx.tagNames, t)
	}
	slices.Sort(idx.tagNames)

	for y, keys := range idx.years {
		slices.Sort(keys)
		idx.yearList = append(idx.yearList, y)
	}
	slices.Sort(idx.yearList)
	slices.Reverse(idx.yearList)

	return idx
}

// Len returns the number of posts.
func (i *Index) Len() int { return len(i.posts) }

// Post returns the post stored under key.
func (i *Index) Post(key string) (*post.Post, bool) {
	p, ok := i.posts[key]
	return p, ok
}

// Keys returns every post key in ascending (oldest first) order.
func (i *Index) Keys() []string { return slices.Clone(i.keys) }

// KeysDescending returns every post key, most recent first.
func (i *Index) KeysDescending() []string {
	keys := slices.Clone(i.keys)
	slices.Reverse(keys)
	return keys
}

// KeyForFile returns the key of the post loaded from the normalized path.
func (i *Index) KeyForFile(path string) (string, bool) {
	k, ok := i.files[path]
	return k, ok
}

// Tags returns the tag names in ascending order.
func (i *Index) Tags() []string { return slices.Clone(i.tagNames) }

// TagKeys returns the keys of posts carrying tag, most recent first.
func (i *Index) TagKeys(tag string) []string { return slices.Clone(i.tags[tag]) }

// Years returns the years that have posts, most recent first.
func (i *Index) Years() []string { return slices.Clone(i.yearList) }

// YearKeys returns the keys of posts published in year, oldest first.
func (i *Index) YearKeys(year string) []string { return slices.Clone(i.years[year]) }

// Resolve maps keys to posts, skipping unknown keys.
func (i *Index) Resolve(keys []string) []*post.Post {
	out := make([]*post.Post, 0, len(keys))
	for _, k := range keys {
		if p, ok := i.posts[k]; ok {
			out = append(out, p)
		}
	}
	return out
}
