// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the report pipeline.
//
// It exposes a narrow Backend interface (counters plus duration
// observations) and a global, pluggable backend defaulting to a no-op,
// so metric calls are always safe even when nothing is configured.
// Concrete systems (Prometheus Pushgateway, Datadog) live in
// subpackages and the rest of the codebase depends only on this
// interface.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a duration-style value.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes metrics if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures one pipeline step: latency plus success/failure.
// Steps are the pipeline stages: load, normalize, resolve, select,
// calculate, write, archive.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter("report_step_total", 1, lbls)
	backend.ObserveHistogram("report_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given job and kind.
//
// Typical kinds:
//   - "loaded"        rows parsed from a source
//   - "parse_skipped" malformed rows skipped by the parser
//   - "date_dropped"  rows dropped during date normalization
//   - "selected"      rows matching the target date
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("report_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
