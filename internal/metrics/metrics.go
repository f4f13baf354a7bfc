package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the countdown counters
type Metrics struct {
	registry *prometheus.Registry

	Started   prometheus.Counter
	Completed prometheus.Counter
	Cancelled *prometheus.CounterVec // by outcome: stopped, reset
	Paused    prometheus.Counter
	Rejected  *prometheus.CounterVec // by validation kind
	Remaining prometheus.Gauge       // seconds left on the active countdown
}

// New creates the counters and registers them on a private registry
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Started = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "countdown_started_total",
			Help: "Total number of countdowns started",
		},
	)

	m.Completed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "countdown_completed_total",
			Help: "Total number of countdowns that reached zero",
		},
	)

	m.Cancelled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "countdown_cancelled_total",
			Help: "Total number of countdowns cleared before reaching zero",
		},
		[]string{"outcome"},
	)

	m.Paused = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "countdown_paused_total",
			Help: "Total number of pauses",
		},
	)

	m.Rejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "countdown_start_rejected_total",
			Help: "Total number of start requests rejected by validation",
		},
		[]string{"reason"},
	)

	m.Remaining = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "countdown_remaining_seconds",
			Help: "Whole seconds left on the active countdown",
		},
	)

	m.registry.MustRegister(m.Started, m.Completed, m.Cancelled, m.Paused, m.Rejected, m.Remaining)

	return m
}

// Registry exposes the registry for scraping and tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
