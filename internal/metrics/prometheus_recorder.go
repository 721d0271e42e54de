package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "hakkan"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	postsParsed   prom.Counter
	parseFailures *prom.CounterVec
	pagesRendered *prom.CounterVec
	workers       prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.postsParsed = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "posts_parsed_total",
		Help:      "Content files successfully parsed into posts",
	})
	pr.parseFailures = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "parse_failures_total",
		Help:      "Content files rejected during parsing, by error category",
	}, []string{"category"})
	pr.pagesRendered = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "pages_rendered_total",
		Help:      "Pages written to the output tree, by page kind",
	}, []string{"kind"})
	pr.workers = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "workers",
		Help:      "Parse and render concurrency of the last build",
	})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.postsParsed, pr.parseFailures, pr.pagesRendered, pr.workers)
	return pr
}

// Registry returns the registry the collectors are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

// WriteTextfile writes every gathered metric in the Prometheus text format.
// The file is written to a temporary name and renamed into place.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.registry == nil {
		return nil
	}
	return prom.WriteToTextfile(path, p.registry)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) AddPostsParsed(n int) {
	if p == nil || p.postsParsed == nil || n <= 0 {
		return
	}
	p.postsParsed.Add(float64(n))
}

func (p *PrometheusRecorder) IncParseFailure(category string) {
	if p == nil || p.parseFailures == nil {
		return
	}
	p.parseFailures.WithLabelValues(category).Inc()
}

func (p *PrometheusRecorder) IncPagesRendered(kind string) {
	if p == nil || p.pagesRendered == nil {
		return
	}
	p.pagesRendered.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) SetWorkers(n int) {
	if p == nil || p.workers == nil {
		return
	}
	p.workers.Set(float64(n))
}
