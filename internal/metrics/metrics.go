// Package metrics registers the Prometheus collectors exported on /metrics.
//
// Collectors are package-level and registered with the default registry via
// promauto, so importing the package is enough to expose them.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Outbound calls to TMDB, YouTube, IMDb and the LLM.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingeboard_upstream_requests_total",
			Help: "Outbound API requests by service, operation and outcome",
		},
		[]string{"service", "operation", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bingeboard_upstream_request_duration_seconds",
			Help:    "Latency of outbound API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bingeboard_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingeboard_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// HTTP API.
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingeboard_api_requests_total",
			Help: "HTTP API requests by route pattern, method and status",
		},
		[]string{"route", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bingeboard_api_request_duration_seconds",
			Help:    "HTTP API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Domain events.
	ListMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingeboard_list_mutations_total",
			Help: "List mutations by operation",
		},
		[]string{"operation"},
	)

	AssistantActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingeboard_assistant_actions_total",
			Help: "Assistant commands by interpreted action type",
		},
		[]string{"action"},
	)
)

// RecordUpstream records a completed outbound request.
func RecordUpstream(service, operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(service, operation, outcome).Inc()
	UpstreamDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordAPIRequest records a served HTTP request.
func RecordAPIRequest(route, method string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	APIRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}
