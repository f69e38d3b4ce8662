// Package base provides the HTTP request execution shared by the Wikimedia analytics client.
package base

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apierrors "github.com/olgasafonova/wikiedits-mcp-server/internal/errors"
	"github.com/olgasafonova/wikiedits-mcp-server/metrics"
	"github.com/olgasafonova/wikiedits-mcp-server/tracing"
)

const (
	// Version is reported in the default User-Agent
	Version = "0.1.0"

	// DefaultBaseURL is the Wikimedia REST metrics root
	DefaultBaseURL = "https://wikimedia.org/api/rest_v1/metrics"

	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// MaxConcurrentRequests limits parallel API calls
	MaxConcurrentRequests = 5
)

// DefaultUserAgent identifies the client to the Wikimedia API
var DefaultUserAgent = "wikiedits-mcp-server/" + Version

// Config is the fixed request configuration. It is built once and never mutated.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// DefaultConfig returns the production configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
	}
}

// withDefaults fills zero fields from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// Client provides common HTTP client infrastructure with a bounded number of
// in-flight requests. Each call performs exactly one GET.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	Semaphore  chan struct{}

	config Config
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithConfig sets the request configuration
func WithConfig(cfg Config) ClientOption {
	return func(client *Client) {
		client.config = cfg.withDefaults()
	}
}

// NewClient creates a new base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		Logger:    slog.Default(),
		Semaphore: make(chan struct{}, MaxConcurrentRequests),
		config:    DefaultConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.HTTPClient == nil {
		c.HTTPClient = newHTTPClient(c.config.Timeout)
	}

	return c
}

// Config returns a copy of the client's request configuration
func (c *Client) Config() Config {
	return c.config
}

// Close releases idle connections held by the client
func (c *Client) Close() {
	if c.HTTPClient != nil {
		c.HTTPClient.CloseIdleConnections()
	}
}

// AcquireSlot blocks until a request slot is available or context is canceled
func (c *Client) AcquireSlot(ctx context.Context) error {
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	default:
	}

	metrics.RateLimitWaits.Inc()
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context canceled while waiting for request slot: %w", ctx.Err())
	}
}

// ReleaseSlot releases a request slot
func (c *Client) ReleaseSlot() {
	<-c.Semaphore
}

// RequestConfig configures a single API request
type RequestConfig struct {
	Endpoint string // e.g. "edits/aggregate"
	Args     string // "/"-joined path arguments
	BaseURL  string // overrides Config.BaseURL when set
}

// BuildURL joins base URL, endpoint and args with "/"
func BuildURL(baseURL, endpoint, args string) string {
	return strings.Join([]string{baseURL, endpoint, args}, "/")
}

// URL returns the full request URL for cfg
func (c *Client) URL(cfg RequestConfig) string {
	baseURL := c.config.BaseURL
	if cfg.BaseURL != "" {
		baseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return BuildURL(baseURL, cfg.Endpoint, cfg.Args)
}

// GetJSON performs one GET and decodes the JSON body into out.
// Every failure is returned as a *errors.TransportError.
func (c *Client) GetJSON(ctx context.Context, cfg RequestConfig, out any) error {
	reqURL := c.URL(cfg)

	ctx, span := tracing.StartSpan(ctx, "wikimedia.api.request")
	defer span.End()
	tracing.AddAPIAttributes(span, cfg.Endpoint, reqURL)

	start := time.Now()
	status, err := c.get(ctx, reqURL, out)
	duration := time.Since(start)

	span.SetAttributes(attribute.Int("http.response.status_code", status))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordAPICall(cfg.Endpoint, duration.Seconds(), false, string(apierrors.Code(err)))
		return err
	}

	span.SetStatus(codes.Ok, "")
	metrics.RecordAPICall(cfg.Endpoint, duration.Seconds(), true, "")
	c.Logger.Debug("API request completed",
		"endpoint", cfg.Endpoint,
		"url", reqURL,
		"status", status,
		"duration", duration)
	return nil
}

func (c *Client) get(ctx context.Context, reqURL string, out any) (int, error) {
	if err := c.AcquireSlot(ctx); err != nil {
		return 0, classify(reqURL, err)
	}
	defer c.ReleaseSlot()

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, &apierrors.TransportError{Kind: apierrors.KindRequest, URL: reqURL, Err: err}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, classify(reqURL, err)
	}

	body, err := readAndClose(resp)
	if err != nil {
		return resp.StatusCode, classify(reqURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &apierrors.TransportError{
			Kind:       apierrors.KindHTTPStatus,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, &apierrors.TransportError{Kind: apierrors.KindInvalidJSON, URL: reqURL, Err: err}
	}

	return resp.StatusCode, nil
}

// classify maps a transport-level error to its category
func classify(reqURL string, err error) *apierrors.TransportError {
	kind := apierrors.KindRequest

	var netErr net.Error
	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = apierrors.KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = apierrors.KindTimeout
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		kind = apierrors.KindConnection
	}

	return &apierrors.TransportError{Kind: kind, URL: reqURL, Err: err}
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// newHTTPClient creates an HTTP client with pooled transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
