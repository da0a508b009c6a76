package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sarchlab/redstone/ic"
	"github.com/sarchlab/redstone/tracing"
)

// Metrics exports the IC lifecycle in the Prometheus text format. It is a
// tracing.Tracer, so it is fed by the hooks of the mechanic.
type Metrics struct {
	registry  *prometheus.Registry
	lifecycle *prometheus.CounterVec
	loaded    prometheus.Gauge
	tick      prometheus.Gauge
}

// NewMetrics creates the metrics in a registry of their own.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lifecycle: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redstone",
			Name:      "ic_lifecycle_total",
			Help:      "Number of IC lifecycle steps by kind.",
		}, []string{"kind"}),
		loaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "redstone",
			Name:      "ics_loaded",
			Help:      "Number of ICs currently loaded.",
		}),
		tick: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "redstone",
			Name:      "last_lifecycle_tick",
			Help:      "Tick of the latest IC lifecycle step.",
		}),
	}

	m.registry.MustRegister(m.lifecycle, m.loaded, m.tick)

	return m
}

// Collect updates the metrics with one lifecycle entry.
func (m *Metrics) Collect(entry tracing.Entry) {
	m.lifecycle.WithLabelValues(entry.Kind).Inc()
	m.tick.Set(float64(entry.Tick))

	switch entry.Kind {
	case ic.HookPosLoad.Name:
		m.loaded.Inc()
	case ic.HookPosUnload.Name:
		m.loaded.Dec()
	}
}

// Handler serves the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
