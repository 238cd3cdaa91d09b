// Package metrics counts checkpoint verdicts and pipeline runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "draftcheck"

// Recorder owns a private registry so runs can be exported to a textfile
// without the Go runtime collectors.
type Recorder struct {
	registry *prometheus.Registry

	verdicts *prometheus.CounterVec
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	scores   *prometheus.HistogramVec
}

// NewRecorder creates and registers the collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkpoint",
			Name:      "verdicts_total",
			Help:      "Checkpoint verdicts by severity",
		}, []string{"checkpoint", "severity"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkpoint",
			Name:      "duration_seconds",
			Help:      "Time spent in each checkpoint",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"checkpoint"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Pipeline runs by profile, terminal state and overall severity",
		}, []string{"profile", "state", "severity"}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkpoint",
			Name:      "score",
			Help:      "Distribution of checkpoint scores",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"checkpoint"}),
	}
	r.registry.MustRegister(r.verdicts, r.duration, r.runs, r.scores)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveVerdict records one checkpoint outcome.
func (r *Recorder) ObserveVerdict(checkpoint, severity string, elapsed time.Duration, score *float64) {
	if r == nil {
		return
	}
	r.verdicts.WithLabelValues(checkpoint, severity).Inc()
	r.duration.WithLabelValues(checkpoint).Observe(elapsed.Seconds())
	if score != nil {
		r.scores.WithLabelValues(checkpoint).Observe(*score)
	}
}

// ObserveRun records a finished pipeline run.
func (r *Recorder) ObserveRun(profile, state, severity string) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(profile, state, severity).Inc()
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
