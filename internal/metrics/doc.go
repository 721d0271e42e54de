// Package metrics provides build metrics for hakkan.
//
// Components receive a Recorder. NoopRecorder is the default and does
// nothing; PrometheusRecorder keeps Prometheus collectors in its own registry
// and can export them to a node_exporter textfile after a build:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	gen := generator.New(cfg, generator.WithRecorder(rec))
//	_, err := gen.GenerateFromContent(ctx)
//	_ = rec.WriteTextfile("/var/lib/node_exporter/hakkan.prom")
package metrics
