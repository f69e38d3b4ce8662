// Package tracing wires OpenTelemetry for the server. Spans go to an OTLP
// collector when OTEL_EXPORTER_OTLP_ENDPOINT is set and to stderr otherwise.
package tracing

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the server's tracer and is the default service name
const TracerName = "wikiedits-mcp-server"

// Config controls span export
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Enabled        bool
	OTLPEndpoint   string    // empty selects the stdout exporter
	Writer         io.Writer // stdout exporter target, default os.Stderr
	SampleRate     float64
}

// DefaultConfig reads the OTEL_* environment for the given server version
func DefaultConfig(version string) Config {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	return Config{
		ServiceName:    TracerName,
		ServiceVersion: version,
		Environment:    getEnvOrDefault("OTEL_ENVIRONMENT", "development"),
		Enabled:        os.Getenv("OTEL_ENABLED") == "true" || endpoint != "",
		OTLPEndpoint:   endpoint,
		SampleRate:     1.0,
	}
}

// Setup installs a global tracer provider and returns its shutdown function.
// A disabled config leaves the no-op provider in place.
func Setup(ctx context.Context, config Config) (func(context.Context) error, error) {
	if !config.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := newResource(config)
	if err != nil {
		return nil, err
	}

	exporter, err := newExporter(ctx, config)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// newResource merges the SDK defaults with the service identity.
// The semconv import must match the schema version of the pinned SDK.
func newResource(config Config) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			semconv.DeploymentEnvironmentName(config.Environment),
		),
	)
}

func newExporter(ctx context.Context, config Config) (sdktrace.SpanExporter, error) {
	if config.OTLPEndpoint != "" {
		return otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(config.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	}

	// stdout carries the MCP stdio protocol
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	return stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
}

// newSampler keeps the caller's sampling decision and samples root spans at rate
func newSampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case rate <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}

// Tracer returns the server's tracer from the global provider
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a span on the server's tracer
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// AddToolAttributes tags a span with the MCP tool being executed
func AddToolAttributes(span trace.Span, toolName, category string) {
	span.SetAttributes(
		attribute.String("mcp.tool.name", toolName),
		attribute.String("mcp.tool.category", category),
	)
}

// AddAPIAttributes tags a span with the Wikimedia endpoint and full request URL
func AddAPIAttributes(span trace.Span, endpoint, url string) {
	span.SetAttributes(
		attribute.String("wikimedia.api.endpoint", endpoint),
		semconv.URLFull(url),
	)
}

// AddQueryAttributes tags a span with the project and, if set, the page title
func AddQueryAttributes(span trace.Span, project, page string) {
	span.SetAttributes(attribute.String("wikimedia.project", project))
	if page != "" {
		span.SetAttributes(attribute.String("wikimedia.page.title", page))
	}
}

// RecordError marks the span failed when err is non-nil
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
