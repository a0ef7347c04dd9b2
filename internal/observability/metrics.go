package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every custom metric the application exposes.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Sessions
	SessionsIssuedTotal  prometheus.Counter
	SessionsRevokedTotal prometheus.Counter

	// Cache (Redis)
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Queue (RabbitMQ)
	EventsPublishedTotal *prometheus.CounterVec

	// Rate limiter
	RateLimitedTotal prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		SessionsIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_issued_total",
				Help: "Total number of sessions issued at registration or login",
			},
		),

		SessionsRevokedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_revoked_total",
				Help: "Total number of sessions revoked at logout",
			},
		),

		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache"},
		),

		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache"},
		),

		EventsPublishedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "events_published_total",
				Help: "Total number of domain events published to the broker",
			},
			[]string{"event"},
		),

		RateLimitedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_limited_requests_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
	}
}

// GlobalMetrics is the process-wide metrics instance. It stays nil in unit
// tests, so every helper below must tolerate that.
var GlobalMetrics *Metrics

func InitMetrics() {
	GlobalMetrics = NewMetrics()
}

func IncSessionsIssued() {
	if GlobalMetrics != nil {
		GlobalMetrics.SessionsIssuedTotal.Inc()
	}
}

func IncSessionsRevoked() {
	if GlobalMetrics != nil {
		GlobalMetrics.SessionsRevokedTotal.Inc()
	}
}

func IncCacheHit(cache string) {
	if GlobalMetrics != nil {
		GlobalMetrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	}
}

func IncCacheMiss(cache string) {
	if GlobalMetrics != nil {
		GlobalMetrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func IncEventPublished(event string) {
	if GlobalMetrics != nil {
		GlobalMetrics.EventsPublishedTotal.WithLabelValues(event).Inc()
	}
}

func IncRateLimited() {
	if GlobalMetrics != nil {
		GlobalMetrics.RateLimitedTotal.Inc()
	}
}
