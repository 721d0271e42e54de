package generator

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/hakkan/internal/logfields"
)

// beginStaging creates a fresh <output>_stage sibling directory that receives
// every page of this build.
func (g *Generator) beginStaging() error {
	stage := g.outputDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("remove stale staging directory: %w", err)
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return err
	}
	g.stageDir = stage
	slog.Debug("Initialized staging directory", slog.String("staging", stage), slog.String("final", g.outputDir))
	return nil
}

// finalizeStaging promotes the staging directory to the output location.
// The existing output is moved to <output>.prev first and removed once the
// rename succeeded.
func (g *Generator) finalizeStaging() error {
	if g.stageDir == "" {
		return fmt.Errorf("no staging directory initialized")
	}
	if _, err := os.Stat(g.stageDir); err != nil {
		return fmt.Errorf("staging directory missing: %w", err)
	}

	prev := g.outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove previous backup: %w", err)
	}
	hadOutput := false
	if _, err := os.Stat(g.outputDir); err == nil {
		if err := os.Rename(g.outputDir, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
		hadOutput = true
	}
	if err := os.Rename(g.stageDir, g.outputDir); err != nil {
		if hadOutput {
			_ = os.Rename(prev, g.outputDir)
		}
		return fmt.Errorf("promote staging: %w", err)
	}
	g.stageDir = ""
	if hadOutput {
		if err := os.RemoveAll(prev); err != nil {
			slog.Warn("Failed to remove previous output", logfields.Path(prev), logfields.Error(err))
		}
	}
	slog.Info("Promoted staging directory", logfields.Path(g.outputDir))
	return nil
}

// abortStaging removes the staging directory after a failed build.
func (g *Generator) abortStaging() {
	if g.stageDir == "" {
		return
	}
	dir := g.stageDir
	g.stageDir = ""
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory after abort", logfields.Path(dir), logfields.Error(err))
		return
	}
	slog.Debug("Removed staging directory after abort", logfields.Path(dir))
}

// buildRoot is where pages of the running build are written.
func (g *Generator) buildRoot() string {
	if g.stageDir != "" {
		return g.stageDir
	}
	return g.outputDir
}
