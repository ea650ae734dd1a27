package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		weatherRequestsTotal,
		weatherRequestDuration,
		weatherHyphenRetriesTotal,
	)
}

var (
	weatherRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_requests_total",
			Help: "Weather lookups by result (ok, not_found, provider_error, network_error, unexpected_error).",
		},
		[]string{"result"},
	)

	weatherRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weather_request_duration_seconds",
			Help:    "Weather lookup latency including the hyphen fallback.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	weatherHyphenRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "weather_hyphen_retries_total",
			Help: "Lookups retried with hyphens replaced by spaces after a 404.",
		},
	)
)

func ObserveWeatherLookup(result string, elapsed time.Duration) {
	weatherRequestsTotal.WithLabelValues(norm(result)).Inc()
	weatherRequestDuration.Observe(elapsed.Seconds())
}

func IncHyphenRetry() {
	weatherHyphenRetriesTotal.Inc()
}
