package site

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
	htesting "git.home.luguber.info/inful/hakkan/internal/testing"
)

func TestPostFile(t *testing.T) {
	cases := []struct {
		name  string
		files []string
		want  string
		ok    bool
	}{
		{"single post", []string{"post.md"}, "post.md", true},
		{"post with assets", []string{"cover.png", "post.md", "notes.txt"}, "post.md", true},
		{"empty", nil, "", false},
		{"no markdown", []string{"index.html", "a.txt"}, "", false},
		{"two posts", []string{"a.md", "b.md"}, "", false},
		{"case sensitive extension", []string{"POST.MD"}, "", false},
		{"markdown suffix only", []string{"a.mdx", "b.md"}, "b.md", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PostFile(tc.files)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	paths := htesting.WriteFixtureContent(t, root)
	htesting.WriteFile(t, root, "drafts/one.md", "x")
	htesting.WriteFile(t, root, "drafts/two.md", "x")
	htesting.WriteFile(t, root, "2014/060/photo.jpg", "jpg")
	htesting.WriteFile(t, root, "empty/readme.txt", "x")

	files, err := Discover(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, paths, files)
	for _, f := range files {
		assert.NotContains(t, f, "drafts")
	}

	again, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, files, again, "discovery order must be stable")
}

func TestDiscoverRelativeRoot(t *testing.T) {
	root := t.TempDir()
	htesting.WriteFixtureContent(t, root)
	t.Chdir(root)

	files, err := Discover(".")
	require.NoError(t, err)
	require.Len(t, files, 4)
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f))
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentRootNotFound)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryFileSystem))
}
