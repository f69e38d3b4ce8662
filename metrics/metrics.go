// Package metrics provides Prometheus metrics for the Wikimedia edit statistics server.
// It tracks tool calls, upstream API latency and error rates.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "wikiedits_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// APILatency measures Wikimedia API call latency by endpoint
	APILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "wikimedia_api_latency_seconds",
		Help:      "Wikimedia API call latency by endpoint",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	// APIRequestsTotal counts Wikimedia API requests
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wikimedia_api_requests_total",
		Help:      "Total Wikimedia API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	// APIErrors counts Wikimedia API errors by error code
	APIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wikimedia_api_errors_total",
		Help:      "Wikimedia API errors by endpoint and error code",
	}, []string{"endpoint", "error_code"})

	// RateLimitWaits counts requests that had to wait for a request slot
	RateLimitWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rate_limit_waits_total",
		Help:      "Requests that waited for the concurrency semaphore",
	})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// HTTPRequestsTotal counts HTTP transport requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method and status",
	}, []string{"method", "status"})

	// HTTPRequestDuration measures HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path"})
)

// RecordRequest records a completed tool call with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	RequestsTotal.WithLabelValues(tool, status(success)).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a Wikimedia API call
func RecordAPICall(endpoint string, duration float64, success bool, errorCode string) {
	APIRequestsTotal.WithLabelValues(endpoint, status(success)).Inc()
	APILatency.WithLabelValues(endpoint).Observe(duration)
	if errorCode != "" {
		APIErrors.WithLabelValues(endpoint, errorCode).Inc()
	}
}

// RecordHTTPRequest records a request served by the HTTP transport
func RecordHTTPRequest(method, path string, statusCode int, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, statusClass(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
