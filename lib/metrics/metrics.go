package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for fetch and rating counters.
const (
	OutcomeOK           = "ok"
	OutcomeEmpty        = "empty"
	OutcomeAPIError     = "api_error"
	OutcomeNetworkError = "network_error"
)

var (
	// FetchesTotal counts recommendation fetches by outcome.
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viewer_recommendation_fetches_total",
			Help: "Total number of recommendation fetches by outcome",
		},
		[]string{"outcome"},
	)

	// RatingsTotal counts rating submissions by outcome.
	RatingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viewer_rating_submissions_total",
			Help: "Total number of rating submissions by outcome",
		},
		[]string{"outcome"},
	)

	// BackendRequestDuration tracks backend API call latency.
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "viewer_backend_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// ObserveBackendRequest records the duration of one backend call.
func ObserveBackendRequest(endpoint string, start time.Time) {
	BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
