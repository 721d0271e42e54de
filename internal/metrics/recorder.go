package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Page kinds used as the kind label of rendered page counters.
const (
	PageArticle = "article"
	PageIndex   = "index"
	PageTags    = "tags"
	PageArchive = "archive"
)

// Recorder defines observability hooks for build and stage metrics.
// Implementations must be safe for concurrent use; pages are rendered by
// several workers at once.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome string) // outcome: success|warning|failed|canceled
	AddPostsParsed(n int)
	IncParseFailure(category string)
	IncPagesRendered(kind string)
	SetWorkers(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) AddPostsParsed(int)                         {}
func (NoopRecorder) IncParseFailure(string)                     {}
func (NoopRecorder) IncPagesRendered(string)                    {}
func (NoopRecorder) SetWorkers(int)                             {}
