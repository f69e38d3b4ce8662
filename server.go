package main

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/olgasafonova/wikiedits-mcp-server/metrics"
)

const (
	// DefaultRateLimit is requests per minute per client IP on /mcp
	DefaultRateLimit = 60

	// DefaultMaxBodySize caps MCP request bodies
	DefaultMaxBodySize = 1 << 20

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// SecurityConfig configures the HTTP transport guard
type SecurityConfig struct {
	RateLimit   int   // requests per minute per IP, 0 disables
	MaxBodySize int64 // bytes, 0 disables
}

// SecurityMiddleware enforces body size and per-IP rate limits and sets security headers
type SecurityMiddleware struct {
	next    http.Handler
	logger  *slog.Logger
	config  SecurityConfig
	limiter *RateLimiter
}

// NewSecurityMiddleware wraps next with the configured limits
func NewSecurityMiddleware(next http.Handler, logger *slog.Logger, config SecurityConfig) *SecurityMiddleware {
	sm := &SecurityMiddleware{
		next:   next,
		logger: logger,
		config: config,
	}
	if config.RateLimit > 0 {
		sm.limiter = NewRateLimiter(config.RateLimit, time.Minute)
	}
	return sm
}

func (sm *SecurityMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")

	if sm.limiter != nil {
		ip := clientIP(r)
		if !sm.limiter.Allow(ip) {
			sm.logger.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
	}

	if sm.config.MaxBodySize > 0 && r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, sm.config.MaxBodySize)
	}

	sm.next.ServeHTTP(w, r)
}

// Close stops the rate limiter's cleanup goroutine
func (sm *SecurityMiddleware) Close() {
	if sm.limiter != nil {
		sm.limiter.Close()
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimiter keeps one token bucket per client IP allowing rate requests per interval
type RateLimiter struct {
	rate     int
	interval time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket

	stopCh   chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter and starts its cleanup loop
func NewRateLimiter(n int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		rate:     n,
		interval: interval,
		buckets:  make(map[string]*bucket),
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether a request from ip may proceed and consumes a token if so
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(rl.interval/time.Duration(rl.rate)), rl.rate)}
		rl.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	rl.mu.Unlock()

	return b.limiter.Allow()
}

// Close stops the cleanup loop. Safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(max(rl.interval, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops buckets idle long enough to be full again
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.interval)
	for ip, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, ip)
		}
	}
}

// newHTTPHandler builds the HTTP transport routes
func newHTTPHandler(server *mcp.Server, logger *slog.Logger, security SecurityConfig) http.Handler {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	r := chi.NewRouter()
	r.Use(metricsMiddleware)
	r.Use(middleware.Recoverer)

	r.Handle("/mcp", NewSecurityMiddleware(mcpHandler, logger, security))
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", healthHandler)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"name":    ServerName,
		"version": ServerVersion,
	})
}

// knownPaths bounds the path label cardinality
var knownPaths = map[string]bool{"/mcp": true, "/metrics": true, "/health": true}

// statusRecorder captures the response status for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if !knownPaths[path] {
			path = "other"
		}
		metrics.RecordHTTPRequest(r.Method, path, rec.status, time.Since(start).Seconds())
	})
}
