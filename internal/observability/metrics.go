package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the AQI service.
type Metrics struct {
	ReadingsServed *prometheus.CounterVec // labels: source={live,fallback}
	UpstreamErrors prometheus.Counter
	FetchDuration  prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReadingsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "delhibreath",
			Name:      "readings_served_total",
			Help:      "AQI readings served, by source (live or fallback).",
		}, []string{"source"}),
		UpstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "delhibreath",
			Name:      "upstream_errors_total",
			Help:      "OpenAQ fetch failures that triggered the fallback reading.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "delhibreath",
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Duration of OpenAQ latest-measurement requests.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 8},
		}),
	}

	prometheus.MustRegister(
		m.ReadingsServed,
		m.UpstreamErrors,
		m.FetchDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReadingsServed: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "delhibreath", Name: "readings_served_total"}, []string{"source"}),
		UpstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "delhibreath", Name: "upstream_errors_total"}),
		FetchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "delhibreath", Name: "upstream_fetch_duration_seconds"}),
	}
}
