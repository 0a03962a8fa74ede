// Package metrics provides Prometheus observability for the document
// generation workflow. The Metrics type implements pipeline.Observer so it
// can be attached directly to the engine; a nil *Metrics is a no-op
// observer, which keeps tests and tooling free of registry setup.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

// Metrics holds the workflow metrics.
type Metrics struct {
	// Per-stage execution latency
	StageLatency *prometheus.HistogramVec

	// Workflow runs by terminal status
	RunOutcome *prometheus.CounterVec

	// Full run latency from start to resting point
	RunLatency prometheus.Histogram

	// Revision attempts consumed per completed run
	RevisionAttempts prometheus.Histogram

	// Contained stage failures by stage and category
	StageFailures *prometheus.CounterVec

	// Final quality score per completed run
	QualityScore prometheus.Histogram

	// Final compliance score per completed run
	ComplianceScore prometheus.Histogram
}

// New creates a Metrics instance with all workflow metrics registered on
// the default registerer.
func New() *Metrics {
	return &Metrics{
		StageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "privacypoint_stage_duration_seconds",
			Help:    "Duration of individual workflow stages",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"stage"}),

		RunOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "privacypoint_runs_total",
			Help: "Completed workflow runs by resting status",
		}, []string{"status"}),

		RunLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "privacypoint_run_duration_seconds",
			Help:    "Duration of a full workflow run",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),

		RevisionAttempts: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "privacypoint_revision_attempts",
			Help:    "Revision attempts consumed per completed run",
			Buckets: []float64{0, 1, 2, 3, 4},
		}),

		StageFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "privacypoint_stage_failures_total",
			Help: "Contained stage failures by stage and category",
		}, []string{"stage", "category"}),

		QualityScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "privacypoint_quality_score",
			Help:    "Final quality score per completed run",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),

		ComplianceScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "privacypoint_compliance_score",
			Help:    "Final compliance score per completed run",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
	}
}

// StageCompleted records a stage execution.
func (m *Metrics) StageCompleted(stage string, status pipeline.Status, elapsed time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(elapsed.Seconds())
	}
}

// RunCompleted records a finished workflow run.
func (m *Metrics) RunCompleted(s *pipeline.DocumentState, elapsed time.Duration) {
	if m != nil {
		m.RunOutcome.WithLabelValues(string(s.Status)).Inc()
		m.RunLatency.Observe(elapsed.Seconds())
		m.RevisionAttempts.Observe(float64(s.RevisionAttempts))
		m.QualityScore.Observe(s.QualityScore)
		m.ComplianceScore.Observe(s.ComplianceScore)
	}
}

// RecordFailure records a contained stage failure with its category.
func (m *Metrics) RecordFailure(stage, category string) {
	if m != nil {
		m.StageFailures.WithLabelValues(stage, category).Inc()
	}
}
