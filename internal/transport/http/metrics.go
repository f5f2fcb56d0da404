package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. Each server owns its
// registry so tests can build servers side by side.
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.HistogramVec
	calculations *prometheus.CounterVec
}

// NewMetrics registers the API collectors plus the Go and process collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "finproj",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finproj",
			Name:      "calculations_total",
			Help:      "Calculations served by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.calculations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCalculation counts one calculation; outcome is ok, invalid or error
func (m *Metrics) ObserveCalculation(kind, outcome string) {
	m.calculations.WithLabelValues(kind, outcome).Inc()
}
