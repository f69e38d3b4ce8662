package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRequest(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		duration   float64
		success    bool
		wantStatus string
	}{
		{
			name:       "successful request",
			tool:       "test_tool",
			duration:   0.5,
			success:    true,
			wantStatus: "success",
		},
		{
			name:       "failed request",
			tool:       "test_tool",
			duration:   1.0,
			success:    false,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := counterValue(t, RequestsTotal, tt.tool, tt.wantStatus)

			RecordRequest(tt.tool, tt.duration, tt.success)

			if got := counterValue(t, RequestsTotal, tt.tool, tt.wantStatus); got != before+1 {
				t.Errorf("requests_total = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordAPICall(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		duration  float64
		success   bool
		errorCode string
	}{
		{
			name:     "successful API call",
			endpoint: "edits/aggregate",
			duration: 0.1,
			success:  true,
		},
		{
			name:      "failed API call with error code",
			endpoint:  "edited-pages/top-by-edits",
			duration:  0.5,
			success:   false,
			errorCode: "TRANSPORT_HTTP_STATUS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := "success"
			if !tt.success {
				status = "error"
			}
			before := counterValue(t, APIRequestsTotal, tt.endpoint, status)

			RecordAPICall(tt.endpoint, tt.duration, tt.success, tt.errorCode)

			if got := counterValue(t, APIRequestsTotal, tt.endpoint, status); got != before+1 {
				t.Errorf("api requests = %v, want %v", got, before+1)
			}

			if tt.errorCode != "" {
				if got := counterValue(t, APIErrors, tt.endpoint, tt.errorCode); got < 1 {
					t.Error("expected error counter to be incremented")
				}
			}
		})
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{302, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			before := counterValue(t, HTTPRequestsTotal, "POST", tt.want)
			RecordHTTPRequest("POST", "/mcp", tt.code, 0.01)
			if got := counterValue(t, HTTPRequestsTotal, "POST", tt.want); got != before+1 {
				t.Errorf("http_requests_total{status=%q} = %v, want %v", tt.want, got, before+1)
			}
		})
	}
}

func TestMetricsRegistered(t *testing.T) {
	metrics := []prometheus.Collector{
		RequestsTotal,
		RequestDuration,
		RequestInFlight,
		APILatency,
		APIRequestsTotal,
		APIErrors,
		RateLimitWaits,
		PanicsRecovered,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	}

	for i, m := range metrics {
		if m == nil {
			t.Errorf("metric at index %d is nil", i)
		}
	}
}

func TestNamespace(t *testing.T) {
	if Namespace != "wikiedits_mcp" {
		t.Errorf("expected namespace 'wikiedits_mcp', got '%s'", Namespace)
	}
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}
