package qbench

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors updated by an Orchestrator.
type Metrics struct {
	CacheLookups      *prometheus.CounterVec
	Compiles          *prometheus.CounterVec
	PreferredFailures *prometheus.CounterVec
	Executions        *prometheus.CounterVec
	CompileSeconds    *prometheus.HistogramVec
}

// NewMetrics creates the orchestrator collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qbench",
			Name:      "cache_lookups_total",
			Help:      "Compiled-circuit cache lookups by result (hit, miss).",
		}, []string{"result"}),
		Compiles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qbench",
			Name:      "compiles_total",
			Help:      "Successful circuit compilations by path (preferred, fallback).",
		}, []string{"path"}),
		PreferredFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qbench",
			Name:      "preferred_failures_total",
			Help:      "Preferred backend failures recovered by the fallback path, by stage (compile, execute).",
		}, []string{"stage"}),
		Executions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qbench",
			Name:      "executions_total",
			Help:      "Circuit executions by path (preferred, fallback).",
		}, []string{"path"}),
		CompileSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "qbench",
			Name:      "compile_duration_seconds",
			Help:      "Wall time of successful compilations by path.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"path"}),
	}
}
