package omeganet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports loop state to Prometheus. A nil *Metrics is a no-op,
// so the controller can run without a registry.
type Metrics struct {
	Ticks              prometheus.Counter
	Restarts           *prometheus.CounterVec
	StabilityCounter   prometheus.Gauge
	QualifiedAgents    prometheus.Gauge
	ValidationStrength prometheus.Gauge
	Modulation         *prometheus.GaugeVec
}

// NewMetrics registers the loop metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "omeganet",
			Name:      "ticks_total",
			Help:      "Number of simulation ticks executed",
		}),
		Restarts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "omeganet",
			Name:      "restarts_total",
			Help:      "Self-restarts by participant kind",
		}, []string{"kind"}),
		StabilityCounter: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "omeganet",
			Name:      "stability_counter",
			Help:      "Consecutive ticks with every agent stable",
		}),
		QualifiedAgents: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "omeganet",
			Name:      "qualified_agents",
			Help:      "Agents qualifying as fact checkers in the last pass",
		}),
		ValidationStrength: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "omeganet",
			Name:      "validation_strength",
			Help:      "Priority exponent derived from fact checker count",
		}),
		Modulation: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "omeganet",
			Name:      "modulation",
			Help:      "Tick-dependent oscillating modulation factors",
		}, []string{"factor"}),
	}
}

// observeTick records the outcome of one step.
func (m *Metrics) observeTick(agentRestarts, entityRestarts int, c *LoopController, qualified int) {
	if m == nil {
		return
	}
	m.Ticks.Inc()
	m.Restarts.WithLabelValues("agent").Add(float64(agentRestarts))
	m.Restarts.WithLabelValues("entity").Add(float64(entityRestarts))
	m.StabilityCounter.Set(float64(c.window.Counter))
	m.QualifiedAgents.Set(float64(qualified))
	m.ValidationStrength.Set(c.validationStrength)
	m.Modulation.WithLabelValues("recursive_drift_power").Set(c.recursiveDriftPower)
	m.Modulation.WithLabelValues("esoteric_coherence").Set(c.esotericCoherence)
}
