package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/hakkan/internal/config"
	"git.home.luguber.info/inful/hakkan/internal/generator"
	"git.home.luguber.info/inful/hakkan/internal/logfields"
	"git.home.luguber.info/inful/hakkan/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Report      bool   `help:"Write build-report.json and build-report.txt into the output directory"`
	MetricsFile string `name:"metrics-file" type:"path" help:"Write Prometheus text metrics of the build to this file"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = RunBuild(ctx, cfg, BuildOptions{Report: b.Report, MetricsFile: b.MetricsFile})
	return err
}

// BuildOptions are the optional outputs of a build.
type BuildOptions struct {
	Report      bool
	MetricsFile string
}

// RunBuild generates the site described by cfg. The report is only written
// into a successfully promoted output tree; metrics are written either way.
func RunBuild(ctx context.Context, cfg *config.Config, opts BuildOptions) (*generator.BuildReport, error) {
	var recorder *metrics.PrometheusRecorder
	var genOpts []generator.Option
	if opts.MetricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		genOpts = append(genOpts, generator.WithRecorder(recorder))
	}

	report, err := generator.New(cfg, genOpts...).GenerateFromContent(ctx)

	if recorder != nil {
		if werr := recorder.WriteTextfile(opts.MetricsFile); werr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(opts.MetricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return report, err
	}
	if opts.Report {
		if err := report.Persist(cfg.OutputDir); err != nil {
			return report, fmt.Errorf("persist build report: %w", err)
		}
	}
	fmt.Println(report.Summary())
	return report, nil
}
