package normalize

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors a Pipeline reports to.
type Metrics struct {
	passRuns      *prometheus.CounterVec
	passDuration  *prometheus.HistogramVec
	formulas      prometheus.Counter
	rounds        prometheus.Histogram
	internLookups *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		passRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "modalnorm_pass_runs_total",
			Help: "Rewrite pass applications by pass and whether the formula changed",
		}, []string{"pass", "result"}),
		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "modalnorm_pass_duration_seconds",
			Help:    "Duration of a single rewrite pass",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}, []string{"pass"}),
		formulas: factory.NewCounter(prometheus.CounterOpts{
			Name: "modalnorm_formulas_total",
			Help: "Formulas normalized",
		}),
		rounds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "modalnorm_rounds",
			Help:    "Rounds needed to reach a fixpoint",
			Buckets: []float64{1, 2, 3, 4, 8},
		}),
		internLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "modalnorm_intern_lookups_total",
			Help: "Interner lookups of normalized formulas by outcome",
		}, []string{"result"}),
	}
}

func resultLabel(changed bool) string {
	if changed {
		return "changed"
	}
	return "unchanged"
}

func internLabel(shared bool) string {
	if shared {
		return "hit"
	}
	return "miss"
}
