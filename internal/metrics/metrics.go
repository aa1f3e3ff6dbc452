// Package metrics records evaluation metrics in Prometheus format.
//
// Metrics:
//   - <namespace>_evaluations_total: decisions by outcome and source
//   - <namespace>_rule_decisions_total: decisions attributed to each rule
//   - <namespace>_evaluation_duration_seconds: time spent per decision
package metrics

import (
	"fmt"
	"time"

	"rgehrsitz/appraise/internal/runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder observes decisions. It is safe for concurrent use and satisfies
// runtime.Observer.
type Recorder struct {
	registry *prometheus.Registry

	evaluationsTotal   *prometheus.CounterVec
	ruleDecisionsTotal *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
}

// NewRecorder creates a recorder and registers its metrics on a fresh
// registry.
func NewRecorder(namespace string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Total number of fact bundles classified",
			},
			[]string{"outcome", "source"},
		),

		ruleDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_decisions_total",
				Help:      "Number of decisions produced by each rule",
			},
			[]string{"rule"},
		),

		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of a single evaluation in seconds",
				// Evaluations are a few map lookups.
				Buckets: prometheus.ExponentialBuckets(0.0000001, 4, 10),
			},
		),
	}

	r.registry.MustRegister(
		r.evaluationsTotal,
		r.ruleDecisionsTotal,
		r.evaluationDuration,
	)
	return r
}

// Observe records one decision.
func (r *Recorder) Observe(d runtime.Decision, elapsed time.Duration) {
	r.evaluationsTotal.WithLabelValues(d.Outcome, string(d.Source)).Inc()
	if d.Rule != "" {
		r.ruleDecisionsTotal.WithLabelValues(d.Rule).Inc()
	}
	r.evaluationDuration.Observe(elapsed.Seconds())
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metrics in the text exposition format,
// for pickup by a node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}
