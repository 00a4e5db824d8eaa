// Package metrics records operational metrics for a cleaning run behind a
// small pluggable Backend. The default backend discards everything, so
// callers may record unconditionally; cmd/salesclean installs a Pushgateway or
// DogStatsD backend when configured.
package metrics

import "time"

// Metric names shared by every backend.
const (
	StepTotal    = "salesclean_step_total"
	StepDuration = "salesclean_step_duration_seconds"
	RowsTotal    = "salesclean_rows_total"
	RejectsTotal = "salesclean_rejects_total"
	BatchesTotal = "salesclean_mirror_batches_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a duration-style value.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes buffered metrics, if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
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

// RecordStep counts one execution of a pipeline step and observes its
// duration, labelled success or failure by err.
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
	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDuration, d.Seconds(), lbls)
}

// RecordRow increments the row counter for kind: loaded, dropped, written,
// duplicates or mirrored. Non-positive deltas are ignored.
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordReject increments the per-reason drop counter.
func RecordReject(job, reason string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RejectsTotal, float64(delta), Labels{
		"job":    job,
		"reason": reason,
	})
}

// RecordBatches increments the mirror batch counter.
func RecordBatches(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(BatchesTotal, float64(delta), Labels{
		"job": job,
	})
}
