// Package metrics exposes Prometheus instrumentation for the job board API.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_rate_limit_rejections_total",
			Help: "Requests rejected with 429",
		},
		[]string{"method", "endpoint"},
	)

	// Job Metrics
	JobMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_job_mutations_total",
			Help: "Successful job writes by operation",
		},
		[]string{"operation"}, // "create", "update", "delete"
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimited records a request rejected by the rate limiter
func RecordRateLimited(method, endpoint string) {
	RateLimitRejections.WithLabelValues(method, endpoint).Inc()
}

// RecordJobMutation records a successful create, update or delete
func RecordJobMutation(operation string) {
	JobMutations.WithLabelValues(operation).Inc()
}

// Endpoint collapses a request path to a bounded label value, replacing
// the job id segment with {id}.
func Endpoint(path string) string {
	switch {
	case path == "/health", path == "/metrics", path == "/jobs":
		return path
	case strings.HasPrefix(path, "/jobs/") && !strings.Contains(path[len("/jobs/"):], "/"):
		return "/jobs/{id}"
	default:
		return "other"
	}
}
