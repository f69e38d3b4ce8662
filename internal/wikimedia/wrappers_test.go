package wikimedia

import (
	"context"
	"strings"
	"testing"

	apierrors "github.com/olgasafonova/wikiedits-mcp-server/internal/errors"
)

func TestEdits_Routing(t *testing.T) {
	tests := []struct {
		name       string
		args       EditsArgs
		wantPrefix string
	}{
		{
			name:       "aggregate without page title",
			args:       EditsArgs{Start: "20240101", End: "20240102"},
			wantPrefix: "/edits/aggregate/all-projects/all-editor-types/all-page-types/daily/",
		},
		{
			name:       "per page with page title",
			args:       EditsArgs{Start: "20240101", End: "20240102", Project: "en.wikipedia", PageTitle: "Python"},
			wantPrefix: "/edits/per-page/en.wikipedia/Python/all-editor-types/daily/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newTestClient(t, rangeBody(t, Record{Edits: 100}, Record{Edits: 150}))

			total, err := client.Edits(context.Background(), tt.args)
			if err != nil {
				t.Fatalf("Edits failed: %v", err)
			}
			if total != 250 {
				t.Errorf("total = %d, want 250", total)
			}

			paths := rec.Paths()
			if len(paths) != 1 {
				t.Fatalf("server called %d times, want 1", len(paths))
			}
			if !strings.HasPrefix(paths[0], tt.wantPrefix) {
				t.Errorf("path = %q, want prefix %q", paths[0], tt.wantPrefix)
			}
		})
	}
}

func TestBytes_Routing(t *testing.T) {
	records := []Record{
		{AbsBytesDiff: 500, NetBytesDiff: -120},
		{AbsBytesDiff: 250, NetBytesDiff: 20},
	}

	tests := []struct {
		name       string
		args       BytesArgs
		wantPrefix string
		want       int64
	}{
		{
			name:       "absolute aggregate by default",
			args:       BytesArgs{Start: "20240101", End: "20240102"},
			wantPrefix: "/bytes-difference/absolute/aggregate/all-projects/",
			want:       750,
		},
		{
			name:       "absolute per page",
			args:       BytesArgs{Start: "20240101", End: "20240102", DiffType: DiffAbsolute, PageTitle: "Python"},
			wantPrefix: "/bytes-difference/absolute/per-page/all-projects/Python/",
			want:       750,
		},
		{
			name:       "net aggregate",
			args:       BytesArgs{Start: "20240101", End: "20240102", DiffType: DiffNet},
			wantPrefix: "/bytes-difference/net/aggregate/all-projects/",
			want:       -100,
		},
		{
			name:       "net per page",
			args:       BytesArgs{Start: "20240101", End: "20240102", DiffType: DiffNet, PageTitle: "Python"},
			wantPrefix: "/bytes-difference/net/per-page/all-projects/Python/",
			want:       -100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newTestClient(t, rangeBody(t, records...))

			total, err := client.Bytes(context.Background(), tt.args)
			if err != nil {
				t.Fatalf("Bytes failed: %v", err)
			}
			if total != tt.want {
				t.Errorf("total = %d, want %d", total, tt.want)
			}

			paths := rec.Paths()
			if len(paths) != 1 {
				t.Fatalf("server called %d times, want 1", len(paths))
			}
			if !strings.HasPrefix(paths[0], tt.wantPrefix) {
				t.Errorf("path = %q, want prefix %q", paths[0], tt.wantPrefix)
			}
		})
	}
}

func TestBytes_EmptyResultIsZero(t *testing.T) {
	client, _ := newTestClient(t, rangeBody(t))

	total, err := client.Bytes(context.Background(), BytesArgs{Start: "20240101", End: "20240102"})
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}

func TestPages_Routing(t *testing.T) {
	records := []Record{{NewPages: 3, EditedPages: 40}, {NewPages: 4, EditedPages: 60}}

	tests := []struct {
		name       string
		args       PagesArgs
		wantPrefix string
		want       int64
	}{
		{
			name:       "edited by default",
			args:       PagesArgs{Start: "20240101", End: "20240102"},
			wantPrefix: "/edited-pages/aggregate/all-projects/all-editor-types/all-page-types/all-activity-levels/daily/",
			want:       100,
		},
		{
			name:       "edited with activity level",
			args:       PagesArgs{Start: "20240101", End: "20240102", ChangeType: ChangeEdited, ActivityLevel: "1..4-edits"},
			wantPrefix: "/edited-pages/aggregate/all-projects/all-editor-types/all-page-types/1..4-edits/daily/",
			want:       100,
		},
		{
			name:       "new",
			args:       PagesArgs{Start: "20240101", End: "20240102", ChangeType: ChangeNew, Project: "fr.wikipedia"},
			wantPrefix: "/edited-pages/new/fr.wikipedia/all-editor-types/all-page-types/daily/",
			want:       7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newTestClient(t, rangeBody(t, records...))

			total, err := client.Pages(context.Background(), tt.args)
			if err != nil {
				t.Fatalf("Pages failed: %v", err)
			}
			if total != tt.want {
				t.Errorf("total = %d, want %d", total, tt.want)
			}

			paths := rec.Paths()
			if len(paths) != 1 {
				t.Fatalf("server called %d times, want 1", len(paths))
			}
			if !strings.HasPrefix(paths[0], tt.wantPrefix) {
				t.Errorf("path = %q, want prefix %q", paths[0], tt.wantPrefix)
			}
		})
	}
}

func TestTop_Truncates(t *testing.T) {
	ranked := []Record{
		{PageTitle: "A", Edits: 50, Rank: 1},
		{PageTitle: "B", Edits: 40, Rank: 2},
		{PageTitle: "C", Edits: 30, Rank: 3},
		{PageTitle: "D", Edits: 20, Rank: 4},
		{PageTitle: "E", Edits: 10, Rank: 5},
	}
	client, rec := newTestClient(t, topBody(t, ranked...))

	got, err := client.Top(context.Background(), TopArgs{Date: "2024-03-15", Count: 3})
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d pages, want 3", len(got))
	}
	for i, want := range []string{"A", "B", "C"} {
		if got[i].PageTitle != want {
			t.Errorf("pages[%d] = %q, want %q", i, got[i].PageTitle, want)
		}
	}

	want := "/edited-pages/top-by-edits/all-projects/all-editor-types/all-page-types/2024/03/15"
	if paths := rec.Paths(); len(paths) != 1 || paths[0] != want {
		t.Errorf("paths = %v, want [%s]", paths, want)
	}
}

func TestTop_DoesNotReorder(t *testing.T) {
	unordered := []Record{
		{PageTitle: "low", Edits: 1, Rank: 3},
		{PageTitle: "high", Edits: 99, Rank: 1},
	}
	client, _ := newTestClient(t, topBody(t, unordered...))

	got, err := client.Top(context.Background(), TopArgs{Date: "20240315", Count: 5})
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(got) != 2 || got[0].PageTitle != "low" || got[1].PageTitle != "high" {
		t.Errorf("pages = %+v, want API order", got)
	}
}

func TestTop_DefaultCount(t *testing.T) {
	var many []Record
	for i := 1; i <= 15; i++ {
		many = append(many, Record{PageTitle: "P", Rank: i})
	}
	client, _ := newTestClient(t, topBody(t, many...))

	got, err := client.Top(context.Background(), TopArgs{Date: "20240315"})
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(got) != DefaultTopCount {
		t.Errorf("got %d pages, want %d", len(got), DefaultTopCount)
	}
}

func TestTop_Routing(t *testing.T) {
	tests := []struct {
		by         string
		wantPrefix string
	}{
		{ByEdits, "/edited-pages/top-by-edits/"},
		{ByNetDiff, "/edited-pages/top-by-net-bytes-difference/"},
		{ByAbsDiff, "/edited-pages/top-by-absolute-bytes-difference/"},
	}

	for _, tt := range tests {
		t.Run(tt.by, func(t *testing.T) {
			client, rec := newTestClient(t, topBody(t))

			if _, err := client.Top(context.Background(), TopArgs{Date: "20240315", By: tt.by}); err != nil {
				t.Fatalf("Top failed: %v", err)
			}
			paths := rec.Paths()
			if len(paths) != 1 || !strings.HasPrefix(paths[0], tt.wantPrefix) {
				t.Errorf("paths = %v, want prefix %q", paths, tt.wantPrefix)
			}
		})
	}
}

func TestWrappers_InvalidSelectors(t *testing.T) {
	tests := []struct {
		name     string
		call     func(*Client) error
		field    string
		value    string
		contains []string
	}{
		{
			name: "top by",
			call: func(c *Client) error {
				_, err := c.Top(context.Background(), TopArgs{Date: "20240315", By: "views"})
				return err
			},
			field:    "by",
			value:    "views",
			contains: []string{`"views"`, `"edits"`, `"net-diff"`, `"absolute-diff"`},
		},
		{
			name: "bytes diff type",
			call: func(c *Client) error {
				_, err := c.Bytes(context.Background(), BytesArgs{Start: "20240101", End: "20240102", DiffType: "relative"})
				return err
			},
			field:    "diff_type",
			value:    "relative",
			contains: []string{`"relative"`, `"absolute"`, `"net"`},
		},
		{
			name: "pages change type",
			call: func(c *Client) error {
				_, err := c.Pages(context.Background(), PagesArgs{Start: "20240101", End: "20240102", ChangeType: "deleted"})
				return err
			},
			field:    "change_type",
			value:    "deleted",
			contains: []string{`"deleted"`, `"new"`, `"edited"`},
		},
		{
			name: "series metric",
			call: func(c *Client) error {
				_, err := c.Series(context.Background(), SeriesArgs{Metric: "views", Start: "20240101", End: "20240102"})
				return err
			},
			field:    "metric",
			value:    "views",
			contains: []string{`"views"`, `"new-pages"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newTestClient(t, rangeBody(t))

			err := tt.call(client)
			sel, ok := err.(*apierrors.SelectorError)
			if !ok {
				t.Fatalf("expected SelectorError, got %T: %v", err, err)
			}
			if sel.Field != tt.field || sel.Value != tt.value {
				t.Errorf("selector = %+v", sel)
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q missing %s", err, want)
				}
			}
			if len(rec.Paths()) != 0 {
				t.Error("no request should be made for an invalid selector")
			}
		})
	}
}

func TestTop_NegativeCount(t *testing.T) {
	client, rec := newTestClient(t, topBody(t))

	_, err := client.Top(context.Background(), TopArgs{Date: "20240315", Count: -1})
	if !apierrors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(rec.Paths()) != 0 {
		t.Error("no request should be made for a negative count")
	}
}

func TestSeries_Routing(t *testing.T) {
	tests := []struct {
		name       string
		args       SeriesArgs
		wantPrefix string
	}{
		{"edits", SeriesArgs{Metric: MetricEdits}, "/edits/aggregate/"},
		{"edits per page", SeriesArgs{Metric: MetricEdits, PageTitle: "Go"}, "/edits/per-page/all-projects/Go/"},
		{"net", SeriesArgs{Metric: MetricNetBytesDiff}, "/bytes-difference/net/aggregate/"},
		{"net per page", SeriesArgs{Metric: MetricNetBytesDiff, PageTitle: "Go"}, "/bytes-difference/net/per-page/"},
		{"absolute", SeriesArgs{Metric: MetricAbsBytesDiff}, "/bytes-difference/absolute/aggregate/"},
		{"absolute per page", SeriesArgs{Metric: MetricAbsBytesDiff, PageTitle: "Go"}, "/bytes-difference/absolute/per-page/"},
		{"new pages", SeriesArgs{Metric: MetricNewPages}, "/edited-pages/new/"},
		{"edited pages monthly", SeriesArgs{Metric: MetricEditedPages, Granularity: "monthly"}, "/edited-pages/aggregate/all-projects/all-editor-types/all-page-types/all-activity-levels/monthly/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newTestClient(t, rangeBody(t, Record{Timestamp: "2024-01-01T00:00:00.000Z"}))

			tt.args.Start = "20240101"
			tt.args.End = "20240301"
			records, err := client.Series(context.Background(), tt.args)
			if err != nil {
				t.Fatalf("Series failed: %v", err)
			}
			if len(records) != 1 {
				t.Errorf("got %d records, want 1", len(records))
			}
			paths := rec.Paths()
			if len(paths) != 1 || !strings.HasPrefix(paths[0], tt.wantPrefix) {
				t.Errorf("paths = %v, want prefix %q", paths, tt.wantPrefix)
			}
		})
	}
}

func TestSeries_PageTitleUnsupported(t *testing.T) {
	client, rec := newTestClient(t, rangeBody(t))

	_, err := client.Series(context.Background(), SeriesArgs{
		Metric: MetricNewPages, PageTitle: "Go", Start: "20240101", End: "20240102",
	})
	if !apierrors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(rec.Paths()) != 0 {
		t.Error("no request should be made")
	}
}

func TestMCPWrappers(t *testing.T) {
	t.Run("edits", func(t *testing.T) {
		client, _ := newTestClient(t, rangeBody(t, Record{Edits: 100}, Record{Edits: 150}))
		res, err := client.EditsMCP(context.Background(), EditsArgs{Start: "20240101", End: "20240102"})
		if err != nil {
			t.Fatalf("EditsMCP failed: %v", err)
		}
		if res.Total != 250 || res.Project != DefaultProject || res.Start != "20240101" {
			t.Errorf("result = %+v", res)
		}
	})

	t.Run("bytes", func(t *testing.T) {
		client, _ := newTestClient(t, rangeBody(t, Record{AbsBytesDiff: 10}))
		res, err := client.BytesMCP(context.Background(), BytesArgs{Start: "20240101", End: "20240102"})
		if err != nil {
			t.Fatalf("BytesMCP failed: %v", err)
		}
		if res.Total != 10 || res.DiffType != DiffAbsolute {
			t.Errorf("result = %+v", res)
		}
	})

	t.Run("pages", func(t *testing.T) {
		client, _ := newTestClient(t, rangeBody(t, Record{EditedPages: 8}))
		res, err := client.PagesMCP(context.Background(), PagesArgs{Start: "20240101", End: "20240102"})
		if err != nil {
			t.Fatalf("PagesMCP failed: %v", err)
		}
		if res.Total != 8 || res.ChangeType != ChangeEdited {
			t.Errorf("result = %+v", res)
		}
	})

	t.Run("top", func(t *testing.T) {
		client, _ := newTestClient(t, topBody(t))
		res, err := client.TopMCP(context.Background(), TopArgs{Date: "20240315"})
		if err != nil {
			t.Fatalf("TopMCP failed: %v", err)
		}
		if res.By != ByEdits || res.Pages == nil || len(res.Pages) != 0 {
			t.Errorf("result = %+v", res)
		}
	})

	t.Run("series", func(t *testing.T) {
		client, _ := newTestClient(t, rangeBody(t, Record{Edits: 1}, Record{Edits: 2}))
		res, err := client.SeriesMCP(context.Background(), SeriesArgs{Metric: MetricEdits, Start: "20240101", End: "20240102"})
		if err != nil {
			t.Fatalf("SeriesMCP failed: %v", err)
		}
		if res.Granularity != DefaultGranularity || len(res.Records) != 2 {
			t.Errorf("result = %+v", res)
		}
	})

	t.Run("error", func(t *testing.T) {
		client, _ := newTestClient(t, topBody(t))
		if _, err := client.TopMCP(context.Background(), TopArgs{Date: "20240315", By: "views"}); !apierrors.IsSelector(err) {
			t.Errorf("expected SelectorError, got %v", err)
		}
	})
}

func TestFieldLookups(t *testing.T) {
	rec := Record{Edits: 1, NetBytesDiff: -2, AbsBytesDiff: 3, NewPages: 4, EditedPages: 5}

	metrics := map[string]int64{
		MetricEdits:        1,
		MetricNetBytesDiff: -2,
		MetricAbsBytesDiff: 3,
		MetricNewPages:     4,
		MetricEditedPages:  5,
	}
	for metric, want := range metrics {
		field, ok := MetricField(metric)
		if !ok {
			t.Fatalf("MetricField(%q) not found", metric)
		}
		if got := field(rec); got != want {
			t.Errorf("MetricField(%q) = %d, want %d", metric, got, want)
		}
	}
	if _, ok := MetricField("views"); ok {
		t.Error("MetricField(views) should not be found")
	}

	ranks := map[string]int64{"": 1, ByEdits: 1, ByNetDiff: -2, ByAbsDiff: 3}
	for by, want := range ranks {
		field, ok := RankField(by)
		if !ok {
			t.Fatalf("RankField(%q) not found", by)
		}
		if got := field(rec); got != want {
			t.Errorf("RankField(%q) = %d, want %d", by, got, want)
		}
	}
	if _, ok := RankField("views"); ok {
		t.Error("RankField(views) should not be found")
	}
}
