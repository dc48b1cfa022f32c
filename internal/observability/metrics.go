package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the weather display service.
type Metrics struct {
	// Weather fetches. labels: outcome={success,degraded}
	WeatherFetches *prometheus.CounterVec
	// Geocoding. labels: outcome={found,not_found,error}
	GeocodeRequests *prometheus.CounterVec
	// labels: result={hit,miss}
	GeocodeCache *prometheus.CounterVec
	// Upstream request latency. labels: endpoint={forecast,geocoding}
	UpstreamDuration *prometheus.HistogramVec

	StaleResponses    prometheus.Counter
	NotificationsSent prometheus.Counter
}

// NewMetrics creates and registers all collectors with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.WeatherFetches,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.UpstreamDuration,
		m.StaleResponses,
		m.NotificationsSent,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_display",
			Name:      "weather_fetches_total",
			Help:      "Weather fetches by outcome.",
		}, []string{"outcome"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_display",
			Name:      "geocode_requests_total",
			Help:      "City lookups by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_display",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_display",
			Name:      "upstream_request_duration_seconds",
			Help:      "Open-Meteo request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		StaleResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_display",
			Name:      "stale_responses_total",
			Help:      "Weather responses dropped because a newer request was issued.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_display",
			Name:      "notifications_sent_total",
			Help:      "Push notifications handed to the publisher.",
		}),
	}
}
