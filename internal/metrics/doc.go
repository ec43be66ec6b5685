// Package metrics records link check outcomes.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default so callers never need nil checks. PrometheusRecorder keeps its
// own registry and can write it to a node_exporter textfile after a run.
package metrics
