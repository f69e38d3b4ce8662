// Package wikimedia queries the Wikimedia edit analytics API
// (https://wikimedia.org/api/rest_v1/metrics).
package wikimedia

import (
	"context"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/olgasafonova/wikiedits-mcp-server/internal/base"
	"github.com/olgasafonova/wikiedits-mcp-server/internal/dates"
	"github.com/olgasafonova/wikiedits-mcp-server/tracing"
)

// Endpoint paths
const (
	EndpointEditsAggregate        = "edits/aggregate"
	EndpointEditsPerPage          = "edits/per-page"
	EndpointNetBytesDiffAggregate = "bytes-difference/net/aggregate"
	EndpointNetBytesDiffPerPage   = "bytes-difference/net/per-page"
	EndpointAbsBytesDiffAggregate = "bytes-difference/absolute/aggregate"
	EndpointAbsBytesDiffPerPage   = "bytes-difference/absolute/per-page"
	EndpointNewPages              = "edited-pages/new"
	EndpointEditedPages           = "edited-pages/aggregate"
	EndpointTopByEdits            = "edited-pages/top-by-edits"
	EndpointTopByNetDiff          = "edited-pages/top-by-net-bytes-difference"
	EndpointTopByAbsDiff          = "edited-pages/top-by-absolute-bytes-difference"
)

// Client provides access to the Wikimedia edit analytics API
type Client struct {
	*base.Client
}

// ClientOption configures the Client (re-export base.ClientOption for compatibility)
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithConfig sets the request configuration
func WithConfig(cfg base.Config) ClientOption {
	return base.WithConfig(cfg)
}

// NewClient creates a new Wikimedia analytics client
func NewClient(opts ...ClientOption) *Client {
	return &Client{Client: base.NewClient(opts...)}
}

// EditsAggregate returns edit counts over a date range
func (c *Client) EditsAggregate(ctx context.Context, q RangeQuery) ([]Record, error) {
	return c.queryRange(ctx, EndpointEditsAggregate, layoutAggregate, q)
}

// EditsPerPage returns edit counts of one page over a date range
func (c *Client) EditsPerPage(ctx context.Context, q RangeQuery) ([]Record, error) {
	return c.queryRange(ctx, EndpointEditsPerPage, layoutPerPage, q)
}

// NetBytesDiffAggregate returns the net byte change over a date range
func (c *Client) NetBytesDiffAggregate(ctx context.Context, q RangeQuery) ([]Record, error) {
	return c.queryRange(ctx, EndpointNetBytesDiffAggregate, layoutAggregate, q)
}

// NetBytesDiffPerPage returns the net byte change of one page over a date range
func (c *Client) NetBytesDiffPerPage(ctx context.Context, q RangeQuery) ([]Record, error) {
	return c.queryRange(ctx, EndpointNetBytesDiffPerPage, layoutPerPage, q)
}

// AbsBytesDiffAggregate returns the absolute byte change over a date range
func (c *Client) AbsBytesDiffAggregate(ctx context.Context, q RangeQuery) ([]Record, error) {
	return c.queryRange(ctx, EndpointAbsBytesDiffAggregate, layoutAggregate, q)
}

// AbsBytesDiffPerPage returns the absolute byte change of one page over a date range
func (c *Client) AbsBytesDiffPerPage(ctx context.Context, q RangeQuery) ([]Record, error) {
	return c.queryRange(ctx, EndpointAbsBytesDiffPerPage, layoutPerPage, q)
}

// NewPages returns counts of created pages over a date range
func (c *Client) NewPages(ctx context.Context, q RangeQuery) ([]Record, error) {
	return c.queryRange(ctx, EndpointNewPages, layoutAggregate, q)
}

// EditedPages returns counts of edited pages over a date range, filtered by activity level
func (c *Client) EditedPages(ctx context.Context, q RangeQuery) ([]Record, error) {
	return c.queryRange(ctx, EndpointEditedPages, layoutActivity, q)
}

// TopByEdits returns the most edited pages of one day, in API rank order
func (c *Client) TopByEdits(ctx context.Context, q TopQuery) ([]Record, error) {
	return c.queryTop(ctx, EndpointTopByEdits, q)
}

// TopByNetDiff returns the pages with the largest net byte change on one day
func (c *Client) TopByNetDiff(ctx context.Context, q TopQuery) ([]Record, error) {
	return c.queryTop(ctx, EndpointTopByNetDiff, q)
}

// TopByAbsDiff returns the pages with the largest absolute byte change on one day
func (c *Client) TopByAbsDiff(ctx context.Context, q TopQuery) ([]Record, error) {
	return c.queryTop(ctx, EndpointTopByAbsDiff, q)
}

// SumEditsAggregate returns the total daily edits over a date range
func (c *Client) SumEditsAggregate(ctx context.Context, q RangeQuery) (int64, error) {
	q.Granularity = dates.Daily
	records, err := c.EditsAggregate(ctx, q)
	if err != nil {
		return 0, err
	}
	return Sum(records, FieldEdits), nil
}

// SumEditsPerPage returns the total daily edits of one page over a date range
func (c *Client) SumEditsPerPage(ctx context.Context, q RangeQuery) (int64, error) {
	q.Granularity = dates.Daily
	records, err := c.EditsPerPage(ctx, q)
	if err != nil {
		return 0, err
	}
	return Sum(records, FieldEdits), nil
}

// SumNewPages returns the total daily page creations over a date range
func (c *Client) SumNewPages(ctx context.Context, q RangeQuery) (int64, error) {
	q.Granularity = dates.Daily
	records, err := c.NewPages(ctx, q)
	if err != nil {
		return 0, err
	}
	return Sum(records, FieldNewPages), nil
}

// SumEditedPages returns the total daily edited pages over a date range.
// ActivityLevel is forwarded to the endpoint.
func (c *Client) SumEditedPages(ctx context.Context, q RangeQuery) (int64, error) {
	q.Granularity = dates.Daily
	records, err := c.EditedPages(ctx, q)
	if err != nil {
		return 0, err
	}
	return Sum(records, FieldEditedPages), nil
}

func (c *Client) queryRange(ctx context.Context, endpoint string, layout pathLayout, q RangeQuery) ([]Record, error) {
	q = q.withDefaults()

	ctx, span := tracing.StartSpan(ctx, "wikimedia."+endpoint)
	defer span.End()
	tracing.AddQueryAttributes(span, q.Project, q.PageTitle)
	span.SetAttributes(attribute.String("wikimedia.granularity", q.Granularity))

	args, err := rangeArgs(layout, q)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	var env rangeEnvelope
	if err := c.GetJSON(ctx, base.RequestConfig{Endpoint: endpoint, Args: args, BaseURL: q.BaseURL}, &env); err != nil {
		return nil, err
	}

	records, err := env.records(endpoint)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("wikimedia.records", len(records)))
	return records, nil
}

func (c *Client) queryTop(ctx context.Context, endpoint string, q TopQuery) ([]Record, error) {
	q = q.withDefaults()

	ctx, span := tracing.StartSpan(ctx, "wikimedia."+endpoint)
	defer span.End()
	tracing.AddQueryAttributes(span, q.Project, "")

	args, err := topArgs(q)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	var env topEnvelope
	if err := c.GetJSON(ctx, base.RequestConfig{Endpoint: endpoint, Args: args, BaseURL: q.BaseURL}, &env); err != nil {
		return nil, err
	}

	records, err := env.records(endpoint)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("wikimedia.records", len(records)))
	return records, nil
}
