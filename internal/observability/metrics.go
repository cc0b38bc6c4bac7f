package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/poethra-leaderboard/internal/platform/resilience"
)

const metricsNamespace = "poethra"

// Metrics owns a private registry so tests and multiple instances never collide on the
// default one.
type Metrics struct {
	registry *prometheus.Registry

	submissions       *prometheus.CounterVec
	participantsTotal prometheus.Gauge
	cacheLookups      *prometheus.CounterVec
	circuitState      *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "leaderboard",
			Name:      "weekly_submissions_total",
			Help:      "Weekly result submissions by outcome.",
		}, []string{"outcome"}),
		participantsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "leaderboard",
			Name:      "participants",
			Help:      "Registered participants seen by the last write.",
		}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by cache name and result.",
		}, []string{"cache", "result"}),
		circuitState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "circuit_open",
			Help:      "1 while the named store circuit breaker is open or half open.",
		}, []string{"store"}),
	}
}

func (m *Metrics) SubmissionProcessed(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ParticipantsTotal(n int) {
	m.participantsTotal.Set(float64(n))
}

// ObserveCache matches the cache store observer hook.
func (m *Metrics) ObserveCache(name string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(name, result).Inc()
}

// ObserveCircuit matches the circuit breaker state change hook.
func (m *Metrics) ObserveCircuit(name string, _, to resilience.CircuitState) {
	value := 0.0
	if to != resilience.CircuitStateClosed {
		value = 1
	}
	m.circuitState.WithLabelValues(name).Set(value)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
