package generator

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
	"git.home.luguber.info/inful/hakkan/internal/logfields"
	"git.home.luguber.info/inful/hakkan/internal/metrics"
	"git.home.luguber.info/inful/hakkan/internal/post"
	"git.home.luguber.info/inful/hakkan/internal/site"
)

// Output file names of the site wide pages.
const (
	IndexFile   = "index.html"
	TagsFile    = "tags.html"
	ArchiveFile = "archives.html"
)

// ErrNoPosts is reported as a warning when the content tree holds no post.
var ErrNoPosts = errors.New("no posts discovered")

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	if err := bs.Generator.beginStaging(); err != nil {
		return newFatalStageError(StagePrepareOutput,
			derrors.WrapError(err, derrors.CategoryFileSystem, "failed to prepare staging directory").
				WithContext("path", bs.Generator.outputDir).
				Build())
	}
	return nil
}

func stageDiscoverPosts(_ context.Context, bs *BuildState) error {
	files, err := site.Discover(bs.Generator.cfg.ContentDir())
	if err != nil {
		return newFatalStageError(StageDiscoverPosts, err)
	}
	bs.Files = files
	bs.Report.Files = len(files)
	slog.Info("Discovered content files", logfields.Path(bs.Generator.cfg.ContentDir()), logfields.Count(len(files)))
	if len(files) == 0 {
		return newWarnStageError(StageDiscoverPosts,
			derrors.WrapError(ErrNoPosts, derrors.CategoryContent, "content directory holds no posts").
				Warning().
				WithContext("path", bs.Generator.cfg.ContentDir()).
				Build())
	}
	return nil
}

func stageParsePosts(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	builder := site.NewBuilder(g.cfg.BaseURL, g.converter, g.workers)
	idx, err := builder.Build(ctx, bs.Files)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return newCanceledStageError(StageParsePosts, err)
		}
		failures := derrors.AllClassified(err)
		for _, f := range failures {
			g.recorder.IncParseFailure(string(f.Category()))
		}
		slog.Error("Content errors, no pages written", logfields.Count(len(failures)))
		return newFatalStageError(StageParsePosts, err)
	}
	bs.Index = idx
	g.recorder.AddPostsParsed(idx.Len())
	return nil
}

func stageLoadTemplates(_ context.Context, bs *BuildState) error {
	t, err := loadTemplates(bs.Generator.cfg)
	if err != nil {
		return newFatalStageError(StageLoadTemplates, err)
	}
	bs.Templates = t
	return nil
}

func stageSelectFrontPage(_ context.Context, bs *BuildState) error {
	bs.Report.Posts = bs.Index.Len()
	bs.FrontPage = SelectFrontPage(bs.Index, bs.Generator.cfg.IndexCount)
	bs.frontSet = make(map[string]bool, len(bs.FrontPage))
	for _, k := range bs.FrontPage {
		bs.frontSet[k] = true
	}
	for _, k := range bs.Index.Keys() {
		p, _ := bs.Index.Post(k)
		bs.Report.PostSummaries = append(bs.Report.PostSummaries, PostSummary{
			Key: p.Key, File: p.Path, Fingerprint: p.Fingerprint,
		})
	}
	return nil
}

// stageRenderPosts writes <root>/<year>/<day-of-year>/<slug>.html for every
// post. Every page has its own path, so pages render concurrently.
func stageRenderPosts(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	root := g.buildRoot()
	tmpl := bs.Templates[TemplateArticle]
	siteCtx := newSiteContext(g.cfg)

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for _, key := range bs.Index.Keys() {
		p, _ := bs.Index.Post(key)
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			data := ArticlePage{
				Site:      siteCtx,
				PageTitle: articlePageTitle(g.cfg, p),
				Post:      newPostView(p, bs.frontSet[p.Key]),
			}
			out, err := execute(tmpl, TemplateArticle, data)
			if err != nil {
				return withPost(err, p)
			}
			if err := writePage(ArticlePath(root, p), out); err != nil {
				return err
			}
			g.recorder.IncPagesRendered(metrics.PageArticle)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return newCanceledStageError(StageRenderPosts, err)
		}
		return newFatalStageError(StageRenderPosts, err)
	}
	bs.Report.RenderedPages += bs.Index.Len()
	return nil
}

func stageRenderIndex(_ context.Context, bs *BuildState) error {
	return renderSitePage(bs, StageRenderIndex, TemplateIndex, metrics.PageIndex, IndexFile, newIndexPage(bs))
}

func stageRenderTags(_ context.Context, bs *BuildState) error {
	return renderSitePage(bs, StageRenderTags, TemplateTags, metrics.PageTags, TagsFile, newTagsPage(bs))
}

func stageRenderArchives(_ context.Context, bs *BuildState) error {
	return renderSitePage(bs, StageRenderArchives, TemplateArchive, metrics.PageArchive, ArchiveFile, newArchivePage(bs))
}

func renderSitePage(bs *BuildState, stage StageName, kind, metricKind, file string, data any) error {
	g := bs.Generator
	out, err := execute(bs.Templates[kind], kind, data)
	if err != nil {
		return newFatalStageError(stage, err)
	}
	if err := writePage(pagePath(g.buildRoot(), file), out); err != nil {
		return newFatalStageError(stage, err)
	}
	g.recorder.IncPagesRendered(metricKind)
	bs.Report.RenderedPages++
	return nil
}

func stageCopyStatic(_ context.Context, bs *BuildState) error {
	n, err := CopyStatic(bs.Generator.cfg.StaticDir, bs.Generator.buildRoot())
	if err != nil {
		return newFatalStageError(StageCopyStatic, err)
	}
	bs.Report.StaticFiles = n
	return nil
}

func stagePromoteOutput(_ context.Context, bs *BuildState) error {
	if err := bs.Generator.finalizeStaging(); err != nil {
		return newFatalStageError(StagePromoteOutput,
			derrors.WrapError(err, derrors.CategoryFileSystem, "failed to promote output").
				WithContext("path", bs.Generator.outputDir).
				Build())
	}
	return nil
}

// ArticlePath is the output location of a post page below root.
func ArticlePath(root string, p *post.Post) string {
	return pagePath(root, p.Year, p.DayOfYear, p.Slug+".html")
}

func withPost(err error, p *post.Post) error {
	if ce, ok := derrors.AsClassified(err); ok {
		return ce.WithContext("file", p.Path).WithContext("key", p.Key)
	}
	return err
}
