package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK            = "ok"
	outcomeParseMiss     = "parse_miss"
	outcomeMissingInput  = "missing_input"
	outcomeInferenceFail = "inference_error"
)

// PipelineMetrics counts action outcomes and times model calls.
type PipelineMetrics struct {
	actions   *prometheus.CounterVec
	inference *prometheus.HistogramVec
}

// NewPipelineMetrics registers the collectors on reg. A nil reg keeps them
// unregistered.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)

	return &PipelineMetrics{
		actions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_actions_total",
				Help: "Prompt actions run, by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		inference: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "resume_inference_duration_seconds",
				Help:    "Model call latency in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
			},
			[]string{"action"},
		),
	}
}

func (m *PipelineMetrics) observeAction(action Action, outcome string) {
	m.actions.WithLabelValues(string(action), outcome).Inc()
}

func (m *PipelineMetrics) observeInference(action Action, seconds float64) {
	m.inference.WithLabelValues(string(action)).Observe(seconds)
}
