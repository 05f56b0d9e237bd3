// Package metrics provides run metrics for obagen generators.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	splicer := splice.New(opts).WithRecorder(recorder)
//
// PrometheusRecorder registers counters and histograms on a registry, and
// WriteTextfile dumps that registry in the text exposition format so a
// node-exporter textfile collector can pick up the results of a one-shot
// build step.
package metrics
