package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/olgasafonova/wikiedits-mcp-server/internal/wikimedia"
	"github.com/olgasafonova/wikiedits-mcp-server/metrics"
	"github.com/olgasafonova/wikiedits-mcp-server/tracing"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *wikimedia.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *wikimedia.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server and returns how many were registered.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) int {
	registered := 0
	for _, spec := range AllTools {
		if h.registerByName(server, spec) {
			registered++
		}
	}
	h.logger.Info("Registered all tools", "count", registered)
	return registered
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) bool {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "Edits":
		register(h, server, tool, spec, h.client.EditsMCP)
	case "Bytes":
		register(h, server, tool, spec, h.client.BytesMCP)
	case "Pages":
		register(h, server, tool, spec, h.client.PagesMCP)
	case "Top":
		register(h, server, tool, spec, h.client.TopMCP)
	case "Series":
		register(h, server, tool, spec, h.client.SeriesMCP)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
		return false
	}
	return true
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, wrap(h, spec, method))
}

// wrap builds the tool handler around method.
func wrap[Args, Result any](
	h *HandlerRegistry,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) mcp.ToolHandlerFor[Args, Result] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args Args) (res *mcp.CallToolResult, result Result, err error) {
		defer h.recoverPanic(spec.Name, &err)

		// Start trace span
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category)
		span.SetAttributes(attribute.Bool("mcp.tool.readonly", spec.ReadOnly))

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err = method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	}
}

// recoverPanic recovers from panics in tool handlers and turns them into a tool error.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name}

	switch a := args.(type) {
	case wikimedia.EditsArgs:
		attrs = append(attrs, "project", a.Project, "page_title", a.PageTitle, "start", a.Start, "end", a.End)
	case wikimedia.BytesArgs:
		attrs = append(attrs, "project", a.Project, "diff_type", a.DiffType, "start", a.Start, "end", a.End)
	case wikimedia.PagesArgs:
		attrs = append(attrs, "project", a.Project, "change_type", a.ChangeType, "start", a.Start, "end", a.End)
	case wikimedia.TopArgs:
		attrs = append(attrs, "project", a.Project, "by", a.By, "date", a.Date)
	case wikimedia.SeriesArgs:
		attrs = append(attrs, "project", a.Project, "metric", a.Metric, "granularity", a.Granularity)
	}

	switch r := result.(type) {
	case wikimedia.EditsResult:
		attrs = append(attrs, "total", r.Total)
	case wikimedia.BytesResult:
		attrs = append(attrs, "total", r.Total)
	case wikimedia.PagesResult:
		attrs = append(attrs, "total", r.Total)
	case wikimedia.TopResult:
		attrs = append(attrs, "pages", len(r.Pages))
	case wikimedia.SeriesResult:
		attrs = append(attrs, "records", len(r.Records))
	}

	h.logger.Info("Tool executed", attrs...)
}
