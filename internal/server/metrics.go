package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the collectors exposed on /metrics. Each server owns its
// registry so tests can build servers side by side.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	calculations  *prometheus.CounterVec
	lastTotalCost prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "churrascometro",
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "churrascometro",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"method", "route"},
		),
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "churrascometro",
				Name:      "calculations_total",
				Help:      "Calculations by event duration",
			},
			[]string{"duration"},
		),
		lastTotalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "churrascometro",
			Name:      "last_total_cost_brl",
			Help:      "Total cost of the most recent calculation in reais",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.calculations,
		m.lastTotalCost,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing the metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeCalculation(duration string, total float64) {
	m.calculations.WithLabelValues(duration).Inc()
	m.lastTotalCost.Set(total)
}
