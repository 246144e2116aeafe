package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prochem/flowsim/pkg/domain"
)

// Metrics holds the solver instrumentation. Register it once per process
// and attach its Hooks to every engine.
type Metrics struct {
	passes       prometheus.Counter
	residual     prometheus.Gauge
	convergences *prometheus.CounterVec
	passDuration prometheus.Histogram
}

// NewMetrics builds the metric set under the flowsim namespace.
func NewMetrics() *Metrics {
	return &Metrics{
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowsim_passes_total",
			Help: "Total number of calculation-order passes executed",
		}),
		residual: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flowsim_residual",
			Help: "Largest stream change observed in the most recent pass",
		}),
		convergences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowsim_solves_total",
			Help: "Completed solves by outcome",
		}, []string{"outcome"}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "flowsim_pass_duration_seconds",
			Help:    "Wall-clock duration of one pass",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}
}

// Register adds all metrics to the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.passes, m.residual, m.convergences, m.passDuration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register with a panic on failure, matching the
// prometheus convention for startup wiring.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	if err := m.Register(reg); err != nil {
		panic(err)
	}
}

// Hooks returns lifecycle hooks that feed the metric set.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPassEnd: func(ev domain.PassEvent) {
			m.passes.Inc()
			m.residual.Set(ev.Residual)
			m.passDuration.Observe(ev.Elapsed.Seconds())
		},
		OnConverged: func(passes int, residual float64) {
			m.convergences.WithLabelValues("converged").Inc()
		},
		OnFailure: func(err error) {
			m.convergences.WithLabelValues("failed").Inc()
		},
	}
}
