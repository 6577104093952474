package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes pipeline counters to Prometheus.
type Metrics struct {
	runs        *prometheus.CounterVec
	stageTiming *prometheus.HistogramVec
	active      *prometheus.GaugeVec
}

// NewMetrics registers the pipeline collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_runs_total",
				Help: "Pipeline run outcomes (complete, error, retried, cancelled).",
			},
			[]string{"outcome"},
		),
		stageTiming: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_stage_action_seconds",
				Help:    "Time spent executing a stage action.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage", "result"},
		),
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pipeline_runs_active",
				Help: "Runs currently held by the engine, by stage.",
			},
			[]string{"stage"},
		),
	}

	for _, c := range []prometheus.Collector{m.runs, m.stageTiming, m.active} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) outcome(o string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(o).Inc()
}

func (m *Metrics) observe(stage Stage, ok bool, seconds float64) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.stageTiming.WithLabelValues(string(stage), result).Observe(seconds)
}

func (m *Metrics) setActive(counts map[Stage]int) {
	if m == nil {
		return
	}
	for _, s := range []Stage{StageFetching, StageExtracting, StageAnalyzing, StageFinalizing, StageComplete, StageError} {
		m.active.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
}
