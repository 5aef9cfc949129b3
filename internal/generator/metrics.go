package generator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meal_server_ai_requests_total",
			Help: "Total number of requests to the generation API.",
		},
		[]string{"model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meal_server_ai_request_duration_seconds",
			Help:    "Histogram of generation API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
)

// MetricsIncrementRequests counts one generation API request by outcome.
func MetricsIncrementRequests(model, status string) {
	aiRequestsTotal.WithLabelValues(model, status).Inc()
}

// MetricsRecordRequestDuration records the wall time of one generation API request.
func MetricsRecordRequestDuration(model string, d time.Duration) {
	aiRequestDuration.WithLabelValues(model).Observe(d.Seconds())
}
