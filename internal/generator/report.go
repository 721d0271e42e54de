package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Report file names written by Persist.
const (
	ReportJSONName = "build-report.json"
	ReportTextName = "build-report.txt"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// StageCount aggregates counts of outcomes for a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// PostSummary is the per-post line of a report.
type PostSummary struct {
	Key         string `json:"key"`
	File        string `json:"file"`
	Fingerprint string `json:"fingerprint"`
}

// BuildReport captures what a generation run did.
type BuildReport struct {
	SchemaVersion   int
	BuildID         string
	Start           time.Time
	End             time.Time
	Files           int // content files discovered
	Posts           int // posts parsed
	RenderedPages   int
	StaticFiles     int
	Errors          []error
	Warnings        []error
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	PostSummaries   []PostSummary
	Outcome         BuildOutcome
}

func newBuildReport() *BuildReport {
	return &BuildReport{
		SchemaVersion:   1,
		BuildID:         uuid.NewString(),
		Start:           time.Now(),
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

func (r *BuildReport) recordStageError(se *StageError) {
	r.StageErrorKinds[se.Stage] = se.Kind
	sc := r.StageCounts[se.Stage]
	switch se.Kind {
	case StageErrorWarning:
		sc.Warning++
		r.Warnings = append(r.Warnings, se)
	case StageErrorCanceled:
		sc.Canceled++
		r.Errors = append(r.Errors, se)
	default:
		sc.Fatal++
		r.Errors = append(r.Errors, se)
	}
	r.StageCounts[se.Stage] = sc
}

func (r *BuildReport) finish() { r.End = time.Now() }

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("build=%s files=%d posts=%d pages=%d static=%d duration=%s errors=%d warnings=%d stages=%d outcome=%s",
		r.BuildID, r.Files, r.Posts, r.RenderedPages, r.StaticFiles, dur.Truncate(time.Millisecond),
		len(r.Errors), len(r.Warnings), len(r.StageDurations), r.Outcome)
}

// deriveOutcome sets the Outcome field based on recorded errors/warnings.
func (r *BuildReport) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// buildReportSerializable is the JSON shape of a BuildReport.
type buildReportSerializable struct {
	SchemaVersion   int                   `json:"schema_version"`
	BuildID         string                `json:"build_id"`
	Start           time.Time             `json:"start"`
	End             time.Time             `json:"end"`
	Files           int                   `json:"files"`
	Posts           int                   `json:"posts"`
	RenderedPages   int                   `json:"rendered_pages"`
	StaticFiles     int                   `json:"static_files"`
	Errors          []string              `json:"errors"`
	Warnings        []string              `json:"warnings"`
	StageDurations  map[string]int64      `json:"stage_durations_ms"`
	StageErrorKinds map[string]string     `json:"stage_error_kinds"`
	StageCounts     map[string]StageCount `json:"stage_counts"`
	PostSummaries   []PostSummary         `json:"posts_detail"`
	Outcome         string                `json:"outcome"`
}

func (r *BuildReport) sanitizedCopy() *buildReportSerializable {
	s := &buildReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		BuildID:         r.BuildID,
		Start:           r.Start,
		End:             r.End,
		Files:           r.Files,
		Posts:           r.Posts,
		RenderedPages:   r.RenderedPages,
		StaticFiles:     r.StaticFiles,
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		StageDurations:  make(map[string]int64, len(r.StageDurations)),
		StageErrorKinds: make(map[string]string, len(r.StageErrorKinds)),
		StageCounts:     make(map[string]StageCount, len(r.StageCounts)),
		PostSummaries:   r.PostSummaries,
		Outcome:         string(r.Outcome),
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	for k, v := range r.StageDurations {
		s.StageDurations[k] = v.Milliseconds()
	}
	for k, v := range r.StageErrorKinds {
		s.StageErrorKinds[string(k)] = string(v)
	}
	for k, v := range r.StageCounts {
		s.StageCounts[string(k)] = v
	}
	if s.PostSummaries == nil {
		s.PostSummaries = []PostSummary{}
	}
	return s
}

// Persist writes build-report.json and build-report.txt into root, each via a
// temporary file and rename.
func (r *BuildReport) Persist(root string) error {
	if r.End.IsZero() {
		r.finish()
		r.deriveOutcome()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("ensure root for report: %w", err)
	}
	jb, err := json.MarshalIndent(r.sanitizedCopy(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := writeAtomic(filepath.Join(root, ReportJSONName), jb); err != nil {
		return fmt.Errorf("write report json: %w", err)
	}
	if err := writeAtomic(filepath.Join(root, ReportTextName), []byte(r.Summary()+"\n")); err != nil {
		return fmt.Errorf("write report summary: %w", err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
