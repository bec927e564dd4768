// Package observability wires the service's Prometheus instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// price intelligence service.
type Metrics struct {
	RequestsServed   *prometheus.CounterVec // labels: endpoint={smart_fuel,diesel_index}, outcome={ok,client_error,provider_error,empty}
	VerdictsIssued   *prometheus.CounterVec // labels: verdict={GO,WAIT}
	ProviderDuration prometheus.Histogram
	ProviderCache    *prometheus.CounterVec // labels: result={hit,miss}
	BreakerOpen      prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smarttanken",
			Name:      "requests_total",
			Help:      "Price intelligence requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		VerdictsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smarttanken",
			Name:      "verdicts_total",
			Help:      "Hassle score verdicts issued to consumers.",
		}, []string{"verdict"}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smarttanken",
			Name:      "provider_request_duration_seconds",
			Help:      "Tankerkönig request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ProviderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smarttanken",
			Name:      "provider_cache_total",
			Help:      "Provider cache lookups by result.",
		}, []string{"result"}),
		BreakerOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "smarttanken",
			Name:      "provider_breaker_open",
			Help:      "1 while the provider circuit breaker is open, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RequestsServed,
		m.VerdictsIssued,
		m.ProviderDuration,
		m.ProviderCache,
		m.BreakerOpen,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can construct the service repeatedly without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsServed:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "smarttanken", Name: "requests_total"}, []string{"endpoint", "outcome"}),
		VerdictsIssued:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "smarttanken", Name: "verdicts_total"}, []string{"verdict"}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "smarttanken", Name: "provider_request_duration_seconds"}),
		ProviderCache:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "smarttanken", Name: "provider_cache_total"}, []string{"result"}),
		BreakerOpen:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "smarttanken", Name: "provider_breaker_open"}),
	}
}
