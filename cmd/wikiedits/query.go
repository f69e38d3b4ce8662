package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	apierrors "github.com/olgasafonova/wikiedits-mcp-server/internal/errors"
	"github.com/olgasafonova/wikiedits-mcp-server/internal/output"
	"github.com/olgasafonova/wikiedits-mcp-server/internal/wikimedia"
)

// filters are the flags every query command shares
type filters struct {
	project    string
	editorType string
	pageType   string
}

func (f *filters) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.project, "project", wikimedia.DefaultProject, "project domain, e.g. en.wikipedia")
	fs.StringVar(&f.editorType, "editor-type", wikimedia.DefaultEditorType, "all-editor-types, anonymous, group-bot, name-bot, user")
	fs.StringVar(&f.pageType, "page-type", wikimedia.DefaultPageType, "all-page-types, content, non-content")
}

// dateRange holds the required --start/--end pair
type dateRange struct {
	start string
	end   string
}

func (d *dateRange) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.start, "start", "", "start date, e.g. 2024-01-01 (required)")
	cmd.Flags().StringVar(&d.end, "end", "", "end date (required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func describe(project, pageTitle string) string {
	if pageTitle != "" {
		return project + " / " + pageTitle
	}
	return project
}

func newEditsCmd(a *app) *cobra.Command {
	var (
		f         filters
		r         dateRange
		pageTitle string
	)

	cmd := &cobra.Command{
		Use:   "edits",
		Short: "Total edits on a project or page over a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.client()
			defer client.Close()

			res, err := client.EditsMCP(cmd.Context(), wikimedia.EditsArgs{
				Start:      r.start,
				End:        r.end,
				Project:    f.project,
				PageTitle:  pageTitle,
				EditorType: f.editorType,
				PageType:   f.pageType,
			})
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(res)
			}
			a.printer.Info("Edits on %s from %s to %s", describe(res.Project, res.PageTitle), res.Start, res.End)
			a.printer.Total("edits", res.Total)
			return nil
		},
	}

	f.register(cmd.Flags())
	r.register(cmd)
	cmd.Flags().StringVar(&pageTitle, "page-title", "", "count edits of this page only")
	return cmd
}

func newBytesCmd(a *app) *cobra.Command {
	var (
		f         filters
		r         dateRange
		pageTitle string
		diffType  string
	)

	cmd := &cobra.Command{
		Use:   "bytes",
		Short: "Total absolute or net byte change over a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.client()
			defer client.Close()

			res, err := client.BytesMCP(cmd.Context(), wikimedia.BytesArgs{
				Start:      r.start,
				End:        r.end,
				DiffType:   diffType,
				Project:    f.project,
				PageTitle:  pageTitle,
				EditorType: f.editorType,
				PageType:   f.pageType,
			})
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(res)
			}
			a.printer.Info("Byte change on %s from %s to %s", describe(res.Project, res.PageTitle), res.Start, res.End)
			a.printer.Total(res.DiffType+" bytes", res.Total)
			return nil
		},
	}

	f.register(cmd.Flags())
	r.register(cmd)
	cmd.Flags().StringVar(&pageTitle, "page-title", "", "sum byte changes of this page only")
	cmd.Flags().StringVar(&diffType, "diff-type", wikimedia.DiffAbsolute, "absolute or net")
	return cmd
}

func newPagesCmd(a *app) *cobra.Command {
	var (
		f             filters
		r             dateRange
		changeType    string
		activityLevel string
	)

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Total new or edited pages over a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.client()
			defer client.Close()

			res, err := client.PagesMCP(cmd.Context(), wikimedia.PagesArgs{
				Start:         r.start,
				End:           r.end,
				ChangeType:    changeType,
				Project:       f.project,
				EditorType:    f.editorType,
				PageType:      f.pageType,
				ActivityLevel: activityLevel,
			})
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(res)
			}
			a.printer.Info("Pages on %s from %s to %s", res.Project, res.Start, res.End)
			a.printer.Total(res.ChangeType+" pages", res.Total)
			return nil
		},
	}

	f.register(cmd.Flags())
	r.register(cmd)
	cmd.Flags().StringVar(&changeType, "change-type", wikimedia.ChangeEdited, "new or edited")
	cmd.Flags().StringVar(&activityLevel, "activity-level", wikimedia.DefaultActivityLevel, "activity level for edited pages")
	return cmd
}

func newTopCmd(a *app) *cobra.Command {
	var (
		f     filters
		date  string
		by    string
		count int
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Most edited pages of a project on one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := wikimedia.RankField(by)
			if !ok {
				return apierrors.NewSelectorError("--by", by,
					wikimedia.ByEdits, wikimedia.ByNetDiff, wikimedia.ByAbsDiff)
			}

			client := a.client()
			defer client.Close()

			res, err := client.TopMCP(cmd.Context(), wikimedia.TopArgs{
				Date:       date,
				By:         by,
				Count:      count,
				Project:    f.project,
				EditorType: f.editorType,
				PageType:   f.pageType,
			})
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(res)
			}

			a.printer.Header(fmt.Sprintf("Top pages on %s by %s (%s)", res.Project, res.By, res.Date))
			if len(res.Pages) == 0 {
				a.printer.Info("no pages")
				return nil
			}

			table := output.NewTable(a.printer.Writer(), []string{"rank", "page", res.By})
			for _, p := range res.Pages {
				table.AddRow(strconv.Itoa(p.Rank), p.PageTitle, output.FormatInt(field(p)))
			}
			return table.Render()
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().StringVar(&date, "date", "", "day to rank, e.g. 2024-03-15 (required)")
	cmd.Flags().StringVar(&by, "by", wikimedia.ByEdits, "ranking: edits, net-diff, absolute-diff")
	cmd.Flags().IntVar(&count, "count", wikimedia.DefaultTopCount, "number of pages")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newSeriesCmd(a *app) *cobra.Command {
	var (
		f             filters
		r             dateRange
		metric        string
		granularity   string
		pageTitle     string
		activityLevel string
	)

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Daily or monthly time series of one metric",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := wikimedia.MetricField(metric)
			if !ok {
				return apierrors.NewSelectorError("--metric", metric,
					wikimedia.MetricEdits, wikimedia.MetricNetBytesDiff, wikimedia.MetricAbsBytesDiff,
					wikimedia.MetricNewPages, wikimedia.MetricEditedPages)
			}

			client := a.client()
			defer client.Close()

			res, err := client.SeriesMCP(cmd.Context(), wikimedia.SeriesArgs{
				Metric:        metric,
				Start:         r.start,
				End:           r.end,
				Granularity:   granularity,
				Project:       f.project,
				PageTitle:     pageTitle,
				EditorType:    f.editorType,
				PageType:      f.pageType,
				ActivityLevel: activityLevel,
			})
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(res)
			}

			a.printer.Header(fmt.Sprintf("%s %s on %s", res.Granularity, res.Metric, describe(res.Project, res.PageTitle)))
			if len(res.Records) == 0 {
				a.printer.Info("no data")
				return nil
			}

			table := output.NewTable(a.printer.Writer(), []string{"timestamp", res.Metric})
			for _, rec := range res.Records {
				table.AddRow(rec.Timestamp, output.FormatInt(field(rec)))
			}
			if err := table.Render(); err != nil {
				return err
			}
			a.printer.Total("total", wikimedia.Sum(res.Records, field))
			return nil
		},
	}

	f.register(cmd.Flags())
	r.register(cmd)
	cmd.Flags().StringVar(&metric, "metric", "", "edits, net-bytes-diff, absolute-bytes-diff, new-pages, edited-pages (required)")
	cmd.Flags().StringVar(&granularity, "granularity", wikimedia.DefaultGranularity, "daily or monthly")
	cmd.Flags().StringVar(&pageTitle, "page-title", "", "per-page series (edits and byte metrics only)")
	cmd.Flags().StringVar(&activityLevel, "activity-level", wikimedia.DefaultActivityLevel, "activity level for edited-pages")
	_ = cmd.MarkFlagRequired("metric")
	return cmd
}
