package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/hakkan/internal/config"
	"git.home.luguber.info/inful/hakkan/internal/post"
	"git.home.luguber.info/inful/hakkan/internal/site"
	htesting "git.home.luguber.info/inful/hakkan/internal/testing"
)

func TestSelectFrontPage(t *testing.T) {
	root := t.TempDir()
	htesting.WriteFixtureContent(t, root)
	idx, err := site.Build(context.Background(), root, "/")
	require.NoError(t, err)

	assert.Equal(t, []string{htesting.MarchPostKey, febKey}, SelectFrontPage(idx, 2))
	assert.Len(t, SelectFrontPage(idx, 6), 4)
	assert.Empty(t, SelectFrontPage(idx, 0))
	assert.Empty(t, SelectFrontPage(idx, -1))
}

func TestArticlePageTitle(t *testing.T) {
	p := &post.Post{Title: "Hello"}
	assert.Equal(t, "Hello :: Log", articlePageTitle(&config.Config{Title: "Log"}, p))
	assert.Equal(t, "Hello", articlePageTitle(&config.Config{}, p))
	assert.Equal(t, "Log", articlePageTitle(&config.Config{Title: "Log"}, &post.Post{}))
}

func TestArticlePath(t *testing.T) {
	p := &post.Post{Year: "2014", DayOfYear: "060", Slug: "march"}
	assert.Equal(t, "/out/2014/060/march.html", ArticlePath("/out", p))
}
