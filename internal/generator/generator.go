package generator

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/hakkan/internal/config"
	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
	"git.home.luguber.info/inful/hakkan/internal/logfields"
	"git.home.luguber.info/inful/hakkan/internal/markdown"
	"git.home.luguber.info/inful/hakkan/internal/metrics"
	"git.home.luguber.info/inful/hakkan/internal/site"
)

// Generator renders sites for one configuration. A Generator runs one build
// at a time.
type Generator struct {
	cfg       *config.Config
	recorder  metrics.Recorder
	converter markdown.Converter
	workers   int

	outputDir string
	stageDir  string
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder attaches a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithConverter replaces the markdown converter.
func WithConverter(c markdown.Converter) Option {
	return func(g *Generator) {
		if c != nil {
			g.converter = c
		}
	}
}

// New creates a Generator for cfg.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:       cfg,
		recorder:  metrics.NoopRecorder{},
		converter: markdown.New(),
		workers:   cfg.Build.Workers,
		outputDir: filepath.Clean(cfg.OutputDir),
	}
	if g.workers < 1 {
		g.workers = 1
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateFromContent discovers and parses the content tree, then renders it.
func (g *Generator) GenerateFromContent(ctx context.Context) (*BuildReport, error) {
	stages := append([]StageDef{{StagePrepareOutput, stagePrepareOutput}}, contentStages()...)
	return g.run(ctx, nil, append(stages, renderStages()...))
}

// Generate renders an already built index.
func (g *Generator) Generate(ctx context.Context, idx *site.Index) (*BuildReport, error) {
	if idx == nil {
		return nil, derrors.InternalError("generate called without an index").Build()
	}
	stages := append([]StageDef{{StagePrepareOutput, stagePrepareOutput}}, renderStages()...)
	return g.run(ctx, idx, stages)
}

func (g *Generator) run(ctx context.Context, idx *site.Index, stages []StageDef) (*BuildReport, error) {
	report := newBuildReport()
	bs := newBuildState(g, report)
	bs.Index = idx
	if idx != nil {
		report.Posts = idx.Len()
	}
	g.recorder.SetWorkers(g.workers)

	slog.Info("Build started", logfields.BuildID(report.BuildID),
		logfields.Path(g.outputDir), logfields.Workers(g.workers))

	err := runStages(ctx, bs, stages)
	if err != nil {
		g.abortStaging()
		if !derrors.IsClassified(err) {
			err = derrors.BuildError("build did not complete").
				WithCause(err).
				WithContext("build_id", report.BuildID).
				Build()
		}
	}

	report.finish()
	report.deriveOutcome()
	g.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	g.recorder.IncBuildOutcome(string(report.Outcome))

	attrs := []any{
		logfields.BuildID(report.BuildID),
		logfields.Outcome(string(report.Outcome)),
		logfields.Count(report.RenderedPages),
		logfields.DurationMS(float64(time.Since(report.Start).Milliseconds())),
	}
	if err != nil {
		attrs = append(attrs, slog.String("category", string(derrors.GetCategory(err))))
		slog.Error("Build finished", attrs...)
	} else {
		slog.Info("Build finished", attrs...)
	}
	return report, err
}
