package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
	"git.home.luguber.info/inful/hakkan/internal/metrics"
	"git.home.luguber.info/inful/hakkan/internal/site"
	htesting "git.home.luguber.info/inful/hakkan/internal/testing"
)

const (
	janKey = "20140101140100.test-content-2014-001-Jan-1-2014"
	febKey = "20140201140100.test-content-2014-032-Feb-1-2014"
	novKey = "20131101140100.test-content-2013-305-Nov-1-2013"
)

func dataKey(k string) string { return `data-key="` + k + `"` }

func TestGenerateReferenceSite(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).
		WithTitle("Bear Log").
		WithFixturePosts().
		WithStaticFile("css/site.css", "body{}").
		Build()

	report, err := New(cfg).GenerateFromContent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.Equal(t, 4, report.Files)
	assert.Equal(t, 4, report.Posts)
	assert.Equal(t, 7, report.RenderedPages)
	assert.Equal(t, 1, report.StaticFiles)
	assert.Len(t, report.PostSummaries, 4)

	fa := htesting.NewFileAssertions(t, cfg.OutputDir)
	fa.AssertFileExists(IndexFile).
		AssertFileExists(TagsFile).
		AssertFileExists(ArchiveFile).
		AssertFileExists("css/site.css")
	for _, fp := range htesting.FixturePosts() {
		fa.AssertFileExists(filepath.Join(fp.Date[:4], fp.DayOfYear, fp.Slug+".html"))
	}

	fa.AssertFileContains("2014/060/test-content-2014-060-Mar-1-2014.html",
		"<title>Test Content 2014 060 Mar 1 2014 :: Bear Log</title>",
		"<time>2014-03-01</time>",
		htesting.MarchPostHTML)

	fa.AssertOrder(IndexFile, dataKey(htesting.MarchPostKey), dataKey(febKey), dataKey(janKey), dataKey(novKey))
	fa.AssertFileContains(IndexFile, "<title>Bear Log</title>", `href="/bearlog/2014/060/test-content-2014-060-Mar-1-2014.html"`)
	fa.AssertFileContains(TagsFile, "<title>Bear Log :: Tags</title>", "<h2>mutterings</h2>")
	fa.AssertOrder(TagsFile, dataKey(htesting.MarchPostKey), dataKey(febKey), dataKey(janKey), dataKey(novKey))
	fa.AssertFileContains(ArchiveFile, "<title>Bear Log :: Archives</title>")
	fa.AssertOrder(ArchiveFile, "<h2>2014</h2>", dataKey(janKey), dataKey(febKey), dataKey(htesting.MarchPostKey),
		"<h2>2013</h2>", dataKey(novKey))

	_, err = os.Stat(cfg.OutputDir + "_stage")
	assert.True(t, os.IsNotExist(err), "staging directory should be promoted")
	_, err = os.Stat(cfg.OutputDir + ".prev")
	assert.True(t, os.IsNotExist(err), "backup should be removed")
}

func TestGenerateFrontPageSize(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).WithIndexCount(2).WithFixturePosts().Build()

	_, err := New(cfg).GenerateFromContent(context.Background())
	require.NoError(t, err)

	fa := htesting.NewFileAssertions(t, cfg.OutputDir)
	index := fa.Content(IndexFile)
	assert.Equal(t, 2, strings.Count(index, "<article"))
	assert.Contains(t, index, dataKey(htesting.MarchPostKey)+` data-frontpage="true"`)
	assert.Contains(t, index, dataKey(febKey))
	assert.NotContains(t, index, dataKey(janKey))

	// Every post still gets a page and shows up in the archive.
	fa.AssertFileExists("2013/305/test-content-2013-305-Nov-1-2013.html")
	fa.AssertFileContains(ArchiveFile, dataKey(novKey))
}

func TestGenerateFrontPageLargerThanSite(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).WithIndexCount(10).WithFixturePosts().Build()

	_, err := New(cfg).GenerateFromContent(context.Background())
	require.NoError(t, err)

	index := htesting.NewFileAssertions(t, cfg.OutputDir).Content(IndexFile)
	assert.Equal(t, 4, strings.Count(index, "<article"))
}

func TestGenerateMalformedContentKeepsPreviousOutput(t *testing.T) {
	sb := htesting.NewSiteBuilder(t).WithFixturePosts()
	cfg := sb.Build()

	_, err := New(cfg).GenerateFromContent(context.Background())
	require.NoError(t, err)
	before := htesting.NewFileAssertions(t, cfg.OutputDir).Content(IndexFile)

	sb.WithPost("2015/001/broken.md", "Title: Broken\nSlug: broken\n\nno date\n")
	sb.WithPost("2015/002/new.md", htesting.PostContent("new", "2015-01-02 10:00:00", "", "fresh\n"))

	report, err := New(cfg).GenerateFromContent(context.Background())
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryContent))
	assert.Contains(t, err.Error(), "broken.md")

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageParsePosts, se.Stage)

	fa := htesting.NewFileAssertions(t, cfg.OutputDir)
	assert.Equal(t, before, fa.Content(IndexFile))
	fa.AssertFileNotExists("2015/002/new.html")
	_, statErr := os.Stat(cfg.OutputDir + "_stage")
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateDuplicateKeys(t *testing.T) {
	post := htesting.PostContent("twin", "2014-05-05 10:00:00", "", "body\n")
	cfg := htesting.NewSiteBuilder(t).
		WithPost("a/twin.md", post).
		WithPost("b/twin.md", post).
		Build()

	_, err := New(cfg).GenerateFromContent(context.Background())
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryDuplicate))
	htesting.NewFileAssertions(t, filepath.Dir(cfg.OutputDir)).AssertFileNotExists("site/index.html")
}

func TestGenerateMissingTemplate(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).WithFixturePosts().Build()
	require.NoError(t, os.Remove(filepath.Join(cfg.TemplateDir, "tags.html")))

	_, err := New(cfg).GenerateFromContent(context.Background())
	require.Error(t, err)
	ce, ok := derrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, derrors.CategoryTemplate, ce.Category())
	assert.Equal(t, "tags", ce.Context()["template"])
}

func TestGenerateTemplateExecutionError(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).
		WithFixturePosts().
		WithTemplate("article.html", `{{.Post.NoSuchField}}`).
		Build()

	_, err := New(cfg).GenerateFromContent(context.Background())
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryTemplate))
	_, statErr := os.Stat(filepath.Join(cfg.OutputDir, IndexFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateEmptySite(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).Build()

	report, err := New(cfg).GenerateFromContent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeWarning, report.Outcome)
	assert.Equal(t, StageErrorWarning, report.StageErrorKinds[StageDiscoverPosts])

	fa := htesting.NewFileAssertions(t, cfg.OutputDir)
	fa.AssertFileExists(IndexFile).AssertFileExists(TagsFile).AssertFileExists(ArchiveFile)
	assert.NotContains(t, fa.Content(IndexFile), "<article")
}

func TestGenerateCanceled(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).WithFixturePosts().Build()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := New(cfg).GenerateFromContent(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, OutcomeCanceled, report.Outcome)
	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateRecordsMetrics(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).WithFixturePosts().Build()
	reg := prom.NewRegistry()

	_, err := New(cfg, WithRecorder(metrics.NewPrometheusRecorder(reg))).GenerateFromContent(context.Background())
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	counters := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				counters[mf.GetName()] += c.GetValue()
			}
		}
	}
	assert.InDelta(t, 4, counters["hakkan_posts_parsed_total"], 0)
	assert.InDelta(t, 7, counters["hakkan_pages_rendered_total"], 0)
	assert.InDelta(t, 1, counters["hakkan_build_outcomes_total"], 0)
}

func TestReportPersist(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).WithFixturePosts().Build()
	report, err := New(cfg).GenerateFromContent(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, report.Persist(dir))

	fa := htesting.NewFileAssertions(t, dir)
	fa.AssertFileContains(ReportJSONName, `"outcome": "success"`, `"posts": 4`, htesting.MarchPostKey)
	fa.AssertFileContains(ReportTextName, "outcome=success", "posts=4")
	fa.AssertFileNotExists(ReportJSONName + ".tmp")
}

func TestGenerateFromIndex(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).WithFixturePosts().Build()
	idx, err := site.Build(context.Background(), cfg.ContentDir(), cfg.BaseURL)
	require.NoError(t, err)

	report, err := New(cfg).Generate(context.Background(), idx)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Posts)
	assert.NotContains(t, report.StageDurations, string(StageDiscoverPosts))

	htesting.NewFileAssertions(t, cfg.OutputDir).
		AssertFileContains(IndexFile, dataKey(htesting.MarchPostKey))

	_, err = New(cfg).Generate(context.Background(), nil)
	require.Error(t, err)
}

func TestGenerateReplacesPreviousOutput(t *testing.T) {
	sb := htesting.NewSiteBuilder(t).WithFixturePosts()
	cfg := sb.Build()
	htesting.WriteFile(t, cfg.OutputDir, "stale.html", "old")

	_, err := New(cfg).GenerateFromContent(context.Background())
	require.NoError(t, err)

	htesting.NewFileAssertions(t, cfg.OutputDir).
		AssertFileNotExists("stale.html").
		AssertFileExists(IndexFile)
}

func TestGeneratedPagesWinOverStaticFiles(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).
		WithFixturePosts().
		WithStaticFile(IndexFile, "STATIC PLACEHOLDER").
		WithStaticFile("2014/060/test-content-2014-060-Mar-1-2014.html", "STATIC POST").
		WithStaticFile("2014/060/photo.jpg", "jpeg").
		Build()

	report, err := New(cfg).GenerateFromContent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.Equal(t, 3, report.StaticFiles)

	fa := htesting.NewFileAssertions(t, cfg.OutputDir)
	assert.NotContains(t, fa.Content(IndexFile), "STATIC PLACEHOLDER")
	fa.AssertFileContains(IndexFile, dataKey(htesting.MarchPostKey))
	post := fa.Content("2014/060/test-content-2014-060-Mar-1-2014.html")
	assert.NotContains(t, post, "STATIC POST")
	assert.Contains(t, post, htesting.MarchPostHTML)
	assert.Equal(t, "jpeg", fa.Content("2014/060/photo.jpg"))
}

func TestGenerateCanceledIsBuildError(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).WithFixturePosts().Build()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg).GenerateFromContent(ctx)
	require.Error(t, err)
	assert.Equal(t, derrors.CategoryBuild, derrors.GetCategory(err))
	assert.ErrorIs(t, err, context.Canceled)
	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageErrorCanceled, se.Kind)
}

func TestEmptySiteWarningIsClassified(t *testing.T) {
	cfg := htesting.NewSiteBuilder(t).Build()

	report, err := New(cfg).GenerateFromContent(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.ErrorIs(t, report.Warnings[0], ErrNoPosts)
	ce, ok := derrors.AsClassified(report.Warnings[0])
	require.True(t, ok)
	assert.Equal(t, derrors.SeverityWarning, ce.Severity())
}

func TestStaticCopiedBeforeRendering(t *testing.T) {
	var order []StageName
	for _, st := range renderStages() {
		order = append(order, st.Name)
	}
	copyAt := slices.Index(order, StageCopyStatic)
	require.GreaterOrEqual(t, copyAt, 0)
	for _, render := range []StageName{StageRenderPosts, StageRenderIndex, StageRenderTags, StageRenderArchives} {
		assert.Less(t, copyAt, slices.Index(order, render), render)
	}
}
