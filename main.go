// Wikimedia Edits MCP Server - A Model Context Protocol server for Wikimedia edit statistics
// Provides tools for counting edits, byte changes and pages, ranking top edited pages,
// and reading daily or monthly time series from the Wikimedia analytics REST API
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/pflag"

	"github.com/olgasafonova/wikiedits-mcp-server/internal/base"
	"github.com/olgasafonova/wikiedits-mcp-server/internal/config"
	"github.com/olgasafonova/wikiedits-mcp-server/internal/wikimedia"
	"github.com/olgasafonova/wikiedits-mcp-server/tools"
	"github.com/olgasafonova/wikiedits-mcp-server/tracing"
)

// recoverPanic logs a panic with its stack instead of crashing silently
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

const (
	ServerName    = "wikiedits-mcp-server"
	ServerVersion = base.Version
)

const serverInstructions = `Wikimedia Edits MCP Server answers questions about editing activity on Wikimedia projects
(Wikipedia, Wiktionary, Wikidata, ...) using the public analytics REST API.

Available tools:
- wikimedia_edits: Total edits on a project or page over a date range
- wikimedia_bytes: Total absolute or net byte change over a date range
- wikimedia_pages: Total new or edited pages over a date range
- wikimedia_top: Most edited pages of a project on one day
- wikimedia_series: Daily or monthly time series of one metric

Projects are named by domain (en.wikipedia, de.wikipedia) or all-projects.
Dates accept most common formats (2024-03-15, 20240315, March 15, 2024).

Configure via .wikiedits.yaml or environment variables:
- WIKIEDITS_API_BASE_URL: Analytics API root (default https://wikimedia.org/api/rest_v1/metrics)
- WIKIEDITS_API_USER_AGENT: User-Agent sent to Wikimedia
- WIKIEDITS_API_TIMEOUT: Per-request timeout (default 30s)
- WIKIEDITS_SERVER_HTTP_ADDR: Serve streamable HTTP instead of stdio`

func main() {
	flags := pflag.NewFlagSet(ServerName, pflag.ExitOnError)
	cfgFile := flags.String("config", "", "config file (default is .wikiedits.yaml)")
	flags.String("http", "", "listen address for the streamable HTTP transport (default: stdio)")
	flags.String("base-url", "", "Wikimedia analytics API root")
	flags.String("user-agent", "", "User-Agent header sent to the API")
	flags.Duration("timeout", 0, "per-request timeout")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	rateLimit := flags.Int("rate-limit", DefaultRateLimit, "HTTP requests per minute per client IP (0 disables)")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgFile, flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig(ServerVersion))
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	client := wikimedia.NewClient(
		wikimedia.WithConfig(cfg.Base()),
		wikimedia.WithLogger(logger),
	)
	defer client.Close()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	tools.NewHandlerRegistry(client, logger).RegisterAll(server)

	logger.Info("Starting Wikimedia Edits MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"api_url", cfg.API.BaseURL,
	)

	defer recoverPanic(logger, "server")

	if addr := cfg.Server.HTTPAddr; addr != "" {
		security := SecurityConfig{
			RateLimit:   *rateLimit,
			MaxBodySize: DefaultMaxBodySize,
		}
		if err := serveHTTP(ctx, addr, newHTTPHandler(server, logger, security), logger); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server error: %v", err)
	}
}

// serveHTTP runs the HTTP transport until ctx is cancelled
func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", addr, "mcp", "/mcp", "metrics", "/metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}
