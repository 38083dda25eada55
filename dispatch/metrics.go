package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics wraps the Prometheus counters recorded by an Engine.
// Each Metrics owns its registry so several engines can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Bindings    *prometheus.CounterVec
	Invocations *prometheus.CounterVec
}

// NewMetrics creates the dispatch counters under the given namespace.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Bindings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capability_bindings_total",
			Help:      "Total number of capability binding attempts",
		}, []string{"capability", "variant", "status"}),
		Invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capability_invocations_total",
			Help:      "Total number of observed capability operations",
		}, []string{"capability", "variant", "operation"}),
	}
	reg.MustRegister(m.Bindings)
	reg.MustRegister(m.Invocations)
	return m
}

// Registry returns the Prometheus registry holding the dispatch metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) bound(capability, variant, status string) {
	if m == nil {
		return
	}
	m.Bindings.WithLabelValues(capability, variant, status).Inc()
}

func (m *Metrics) invoked(capability, variant, operation string) {
	if m == nil {
		return
	}
	m.Invocations.WithLabelValues(capability, variant, operation).Inc()
}
