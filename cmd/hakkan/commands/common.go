package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/hakkan/internal/config"
)

// LogLevelEnv overrides the level selected by --verbose.
const LogLevelEnv = "HAKKAN_LOG_LEVEL"

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"${config_file}"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Generate the site"`
	Discover DiscoverCmd `cmd:"" help:"Parse every post and list it without writing output"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Watch    WatchCmd    `cmd:"" help:"Build, then rebuild whenever posts, templates or static files change"`
}

// Vars are the kong interpolation variables used by the CLI tags.
func Vars() kong.Vars {
	return kong.Vars{"config_file": config.DefaultFilename}
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel maps --verbose and HAKKAN_LOG_LEVEL to a slog level. The
// environment wins when set to a known level.
func parseLogLevel(verbose bool) slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// loadConfig loads the configuration named by --config.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded configuration", slog.String("config", cfg.Path),
		slog.String("posts", cfg.ContentDir()), slog.String("output", cfg.OutputDir))
	return cfg, nil
}
