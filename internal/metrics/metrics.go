package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts completed HTTP requests by method, chi route
	// pattern and final status code. The route pattern is used instead of the
	// raw path to keep label cardinality bounded.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// RequestDuration observes request latency by method and route pattern.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordRequest records one completed HTTP request.
func RecordRequest(method, route, statusCode string, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
