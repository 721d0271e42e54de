package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/hakkan/internal/config"
	"git.home.luguber.info/inful/hakkan/internal/logfields"
	"git.home.luguber.info/inful/hakkan/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Every       time.Duration `help:"Also rebuild on this fixed period (0 disables)" default:"0s"`
	MetricsFile string        `name:"metrics-file" type:"path" help:"Rewrite Prometheus text metrics after every build"`
}

func (wc *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return RunWatch(ctx, cfg, wc.Every, BuildOptions{MetricsFile: wc.MetricsFile})
}

// RunWatch builds once and then rebuilds on input changes until ctx is done.
// Failed builds are logged and leave the previous output in place.
func RunWatch(ctx context.Context, cfg *config.Config, every time.Duration, opts BuildOptions) error {
	build := func(ctx context.Context, _ string) error {
		_, err := RunBuild(ctx, cfg, opts)
		return err
	}
	if err := build(ctx, "initial"); err != nil {
		slog.Warn("Initial build failed; waiting for changes", logfields.Error(err))
	}

	rebuilder := watch.NewRebuilder(build)
	watcher, err := watch.NewWatcher(
		[]string{cfg.ContentDir(), cfg.TemplateDir, cfg.StaticDir},
		rebuilder.Request,
		watch.WithExclude(cfg.OutputDir),
	)
	if err != nil {
		return err
	}

	if every > 0 {
		scheduler, err := watch.NewScheduler()
		if err != nil {
			return err
		}
		if _, err := scheduler.Every(every, "periodic-rebuild", func() { rebuilder.Request("schedule") }); err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	go rebuilder.Run(ctx)
	return watcher.Run(ctx)
}
