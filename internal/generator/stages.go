package generator

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/hakkan/internal/logfields"
	"git.home.luguber.info/inful/hakkan/internal/metrics"
	"git.home.luguber.info/inful/hakkan/internal/site"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries the data handed from one stage to the next.
type BuildState struct {
	Generator *Generator
	Report    *BuildReport

	Files     []string
	Index     *site.Index
	Templates map[string]*template.Template
	FrontPage []string

	frontSet map[string]bool
}

func newBuildState(g *Generator, report *BuildReport) *BuildState {
	return &BuildState{Generator: g, Report: report}
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage. Warnings are recorded and the build goes on.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	rec := bs.Generator.recorder
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.recordStageError(se)
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
		}

		slog.Debug("Stage started", logfields.Stage(string(st.Name)))
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		bs.Report.StageDurations[string(st.Name)] = dur
		rec.ObserveStageDuration(string(st.Name), dur)
		slog.Debug("Stage finished", logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))

		if err == nil {
			rec.IncStageResult(string(st.Name), metrics.ResultSuccess)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				se = newCanceledStageError(st.Name, err)
			} else {
				se = newFatalStageError(st.Name, err)
			}
		}
		bs.Report.recordStageError(se)

		switch se.Kind {
		case StageErrorWarning:
			rec.IncStageResult(string(st.Name), metrics.ResultWarning)
			slog.Warn("Stage completed with warning", logfields.Stage(string(st.Name)), logfields.Error(se.Err))
		case StageErrorCanceled:
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
			rec.IncStageResult(string(st.Name), metrics.ResultFatal)
			return se
		}
	}
	return nil
}
