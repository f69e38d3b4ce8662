package wikimedia

import "context"

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// EditsMCP is the MCP wrapper for Edits
func (c *Client) EditsMCP(ctx context.Context, args EditsArgs) (EditsResult, error) {
	total, err := c.Edits(ctx, args)
	if err != nil {
		return EditsResult{}, err
	}
	return EditsResult{
		Total:     total,
		Project:   projectOrDefault(args.Project),
		PageTitle: args.PageTitle,
		Start:     args.Start,
		End:       args.End,
	}, nil
}

// BytesMCP is the MCP wrapper for Bytes
func (c *Client) BytesMCP(ctx context.Context, args BytesArgs) (BytesResult, error) {
	total, err := c.Bytes(ctx, args)
	if err != nil {
		return BytesResult{}, err
	}
	return BytesResult{
		Total:     total,
		DiffType:  diffTypeOrDefault(args.DiffType),
		Project:   projectOrDefault(args.Project),
		PageTitle: args.PageTitle,
		Start:     args.Start,
		End:       args.End,
	}, nil
}

// PagesMCP is the MCP wrapper for Pages
func (c *Client) PagesMCP(ctx context.Context, args PagesArgs) (PagesResult, error) {
	total, err := c.Pages(ctx, args)
	if err != nil {
		return PagesResult{}, err
	}
	return PagesResult{
		Total:      total,
		ChangeType: changeTypeOrDefault(args.ChangeType),
		Project:    projectOrDefault(args.Project),
		Start:      args.Start,
		End:        args.End,
	}, nil
}

// TopMCP is the MCP wrapper for Top
func (c *Client) TopMCP(ctx context.Context, args TopArgs) (TopResult, error) {
	pages, err := c.Top(ctx, args)
	if err != nil {
		return TopResult{}, err
	}
	if pages == nil {
		pages = []Record{}
	}
	return TopResult{
		Date:    args.Date,
		By:      byOrDefault(args.By),
		Project: projectOrDefault(args.Project),
		Pages:   pages,
	}, nil
}

// SeriesMCP is the MCP wrapper for Series
func (c *Client) SeriesMCP(ctx context.Context, args SeriesArgs) (SeriesResult, error) {
	records, err := c.Series(ctx, args)
	if err != nil {
		return SeriesResult{}, err
	}
	if records == nil {
		records = []Record{}
	}
	granularity := args.Granularity
	if granularity == "" {
		granularity = DefaultGranularity
	}
	return SeriesResult{
		Metric:      args.Metric,
		Granularity: granularity,
		Project:     projectOrDefault(args.Project),
		PageTitle:   args.PageTitle,
		Records:     records,
	}, nil
}
