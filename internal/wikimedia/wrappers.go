package wikimedia

import (
	"context"
	"strconv"

	"github.com/olgasafonova/wikiedits-mcp-server/internal/dates"
	apierrors "github.com/olgasafonova/wikiedits-mcp-server/internal/errors"
)

// Edits returns the total daily edits over a date range, for one page when
// PageTitle is set and for the whole project otherwise.
func (c *Client) Edits(ctx context.Context, args EditsArgs) (int64, error) {
	q := RangeQuery{
		Project:     projectOrDefault(args.Project),
		PageTitle:   args.PageTitle,
		EditorType:  args.EditorType,
		PageType:    args.PageType,
		Granularity: dates.Daily,
		Start:       args.Start,
		End:         args.End,
	}

	fetch := c.EditsAggregate
	if args.PageTitle != "" {
		fetch = c.EditsPerPage
	}

	records, err := fetch(ctx, q)
	if err != nil {
		return 0, err
	}
	return Sum(records, FieldEdits), nil
}

// Bytes returns the total daily byte difference over a date range.
// DiffType is "absolute" (default) or "net".
func (c *Client) Bytes(ctx context.Context, args BytesArgs) (int64, error) {
	q := RangeQuery{
		Project:     projectOrDefault(args.Project),
		PageTitle:   args.PageTitle,
		EditorType:  args.EditorType,
		PageType:    args.PageType,
		Granularity: dates.Daily,
		Start:       args.Start,
		End:         args.End,
	}
	perPage := args.PageTitle != ""

	var (
		fetch func(context.Context, RangeQuery) ([]Record, error)
		field Field
	)
	switch diffTypeOrDefault(args.DiffType) {
	case DiffAbsolute:
		fetch, field = c.AbsBytesDiffAggregate, FieldAbsBytesDiff
		if perPage {
			fetch = c.AbsBytesDiffPerPage
		}
	case DiffNet:
		fetch, field = c.NetBytesDiffAggregate, FieldNetBytesDiff
		if perPage {
			fetch = c.NetBytesDiffPerPage
		}
	default:
		return 0, apierrors.NewSelectorError("diff_type", args.DiffType, DiffAbsolute, DiffNet)
	}

	records, err := fetch(ctx, q)
	if err != nil {
		return 0, err
	}
	return Sum(records, field), nil
}

// Pages returns the total daily count of new pages (ChangeType "new") or
// edited pages (ChangeType "edited", the default) over a date range.
func (c *Client) Pages(ctx context.Context, args PagesArgs) (int64, error) {
	q := RangeQuery{
		Project:       projectOrDefault(args.Project),
		EditorType:    args.EditorType,
		PageType:      args.PageType,
		ActivityLevel: args.ActivityLevel,
		Granularity:   dates.Daily,
		Start:         args.Start,
		End:           args.End,
	}

	switch changeTypeOrDefault(args.ChangeType) {
	case ChangeNew:
		records, err := c.NewPages(ctx, q)
		if err != nil {
			return 0, err
		}
		return Sum(records, FieldNewPages), nil
	case ChangeEdited:
		records, err := c.EditedPages(ctx, q)
		if err != nil {
			return 0, err
		}
		return Sum(records, FieldEditedPages), nil
	default:
		return 0, apierrors.NewSelectorError("change_type", args.ChangeType, ChangeNew, ChangeEdited)
	}
}

// Top returns the first Count pages of the ranking selected by By, in the
// order the API returns them.
func (c *Client) Top(ctx context.Context, args TopArgs) ([]Record, error) {
	if args.Count < 0 {
		return nil, apierrors.NewValidationError("count", strconv.Itoa(args.Count), "must not be negative")
	}
	count := args.Count
	if count == 0 {
		count = DefaultTopCount
	}

	q := TopQuery{
		Project:    projectOrDefault(args.Project),
		EditorType: args.EditorType,
		PageType:   args.PageType,
		Date:       args.Date,
	}

	var fetch func(context.Context, TopQuery) ([]Record, error)
	switch byOrDefault(args.By) {
	case ByEdits:
		fetch = c.TopByEdits
	case ByNetDiff:
		fetch = c.TopByNetDiff
	case ByAbsDiff:
		fetch = c.TopByAbsDiff
	default:
		return nil, apierrors.NewSelectorError("by", args.By, ByEdits, ByNetDiff, ByAbsDiff)
	}

	records, err := fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(records) > count {
		records = records[:count]
	}
	return records, nil
}

// Series returns the raw time series of one metric at the requested granularity.
func (c *Client) Series(ctx context.Context, args SeriesArgs) ([]Record, error) {
	q := RangeQuery{
		Project:       projectOrDefault(args.Project),
		PageTitle:     args.PageTitle,
		EditorType:    args.EditorType,
		PageType:      args.PageType,
		ActivityLevel: args.ActivityLevel,
		Granularity:   args.Granularity,
		Start:         args.Start,
		End:           args.End,
	}
	perPage := args.PageTitle != ""

	switch args.Metric {
	case MetricEdits:
		if perPage {
			return c.EditsPerPage(ctx, q)
		}
		return c.EditsAggregate(ctx, q)
	case MetricNetBytesDiff:
		if perPage {
			return c.NetBytesDiffPerPage(ctx, q)
		}
		return c.NetBytesDiffAggregate(ctx, q)
	case MetricAbsBytesDiff:
		if perPage {
			return c.AbsBytesDiffPerPage(ctx, q)
		}
		return c.AbsBytesDiffAggregate(ctx, q)
	case MetricNewPages, MetricEditedPages:
		if perPage {
			return nil, apierrors.NewValidationError("page_title", args.PageTitle, "is not supported for metric "+args.Metric)
		}
		if args.Metric == MetricNewPages {
			return c.NewPages(ctx, q)
		}
		return c.EditedPages(ctx, q)
	default:
		return nil, apierrors.NewSelectorError("metric", args.Metric,
			MetricEdits, MetricNetBytesDiff, MetricAbsBytesDiff, MetricNewPages, MetricEditedPages)
	}
}

func projectOrDefault(project string) string {
	if project == "" {
		return DefaultProject
	}
	return project
}

func diffTypeOrDefault(v string) string {
	if v == "" {
		return DiffAbsolute
	}
	return v
}

func changeTypeOrDefault(v string) string {
	if v == "" {
		return ChangeEdited
	}
	return v
}

func byOrDefault(v string) string {
	if v == "" {
		return ByEdits
	}
	return v
}
