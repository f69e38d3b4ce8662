package wikimedia

// Selector values accepted by the convenience wrappers
const (
	DiffAbsolute = "absolute"
	DiffNet      = "net"

	ChangeEdited = "edited"
	ChangeNew    = "new"

	ByEdits   = "edits"
	ByNetDiff = "net-diff"
	ByAbsDiff = "absolute-diff"

	MetricEdits        = "edits"
	MetricNetBytesDiff = "net-bytes-diff"
	MetricAbsBytesDiff = "absolute-bytes-diff"
	MetricNewPages     = "new-pages"
	MetricEditedPages  = "edited-pages"
)

// DefaultTopCount is the number of pages Top returns when Count is zero
const DefaultTopCount = 10

// EditsArgs contains parameters for summing edits
type EditsArgs struct {
	Start      string `json:"start" jsonschema:"Start date (YYYYMMDD, YYYY-MM-DD, MM/DD/YYYY, DD.MM.YYYY or e.g. March 15, 2024)"`
	End        string `json:"end" jsonschema:"End date, same formats as start"`
	Project    string `json:"project,omitempty" jsonschema:"Wikimedia project domain, e.g. en.wikipedia (default: all-projects)"`
	PageTitle  string `json:"page_title,omitempty" jsonschema:"Page title; when set, counts edits of that page only"`
	EditorType string `json:"editor_type,omitempty" jsonschema:"Editor type filter: all-editor-types, anonymous, group-bot, name-bot, user (default: all-editor-types)"`
	PageType   string `json:"page_type,omitempty" jsonschema:"Page type filter: all-page-types, content, non-content (default: all-page-types)"`
}

// EditsResult is the result of summing edits
type EditsResult struct {
	Total     int64  `json:"total"`
	Project   string `json:"project"`
	PageTitle string `json:"page_title,omitempty"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// BytesArgs contains parameters for summing byte differences
type BytesArgs struct {
	Start      string `json:"start" jsonschema:"Start date"`
	End        string `json:"end" jsonschema:"End date"`
	DiffType   string `json:"diff_type,omitempty" jsonschema:"absolute or net (default: absolute)"`
	Project    string `json:"project,omitempty" jsonschema:"Wikimedia project domain (default: all-projects)"`
	PageTitle  string `json:"page_title,omitempty" jsonschema:"Page title; when set, sums bytes of that page only"`
	EditorType string `json:"editor_type,omitempty" jsonschema:"Editor type filter (default: all-editor-types)"`
	PageType   string `json:"page_type,omitempty" jsonschema:"Page type filter (default: all-page-types)"`
}

// BytesResult is the result of summing byte differences
type BytesResult struct {
	Total     int64  `json:"total"`
	DiffType  string `json:"diff_type"`
	Project   string `json:"project"`
	PageTitle string `json:"page_title,omitempty"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// PagesArgs contains parameters for summing page counts
type PagesArgs struct {
	Start         string `json:"start" jsonschema:"Start date"`
	End           string `json:"end" jsonschema:"End date"`
	ChangeType    string `json:"change_type,omitempty" jsonschema:"new or edited (default: edited)"`
	Project       string `json:"project,omitempty" jsonschema:"Wikimedia project domain (default: all-projects)"`
	EditorType    string `json:"editor_type,omitempty" jsonschema:"Editor type filter (default: all-editor-types)"`
	PageType      string `json:"page_type,omitempty" jsonschema:"Page type filter (default: all-page-types)"`
	ActivityLevel string `json:"activity_level,omitempty" jsonschema:"Activity level for edited pages: all-activity-levels, 1..4-edits, 5..24-edits, 25..99-edits, 100..-edits (default: all-activity-levels)"`
}

// PagesResult is the result of summing page counts
type PagesResult struct {
	Total      int64  `json:"total"`
	ChangeType string `json:"change_type"`
	Project    string `json:"project"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

// TopArgs contains parameters for ranking pages on one day
type TopArgs struct {
	Date       string `json:"date" jsonschema:"Day to rank"`
	By         string `json:"by,omitempty" jsonschema:"Ranking metric: edits, net-diff or absolute-diff (default: edits)"`
	Count      int    `json:"count,omitempty" jsonschema:"Number of pages to return (default: 10)"`
	Project    string `json:"project,omitempty" jsonschema:"Wikimedia project domain (default: all-projects)"`
	EditorType string `json:"editor_type,omitempty" jsonschema:"Editor type filter (default: all-editor-types)"`
	PageType   string `json:"page_type,omitempty" jsonschema:"Page type filter (default: all-page-types)"`
}

// TopResult is the result of ranking pages
type TopResult struct {
	Date    string   `json:"date"`
	By      string   `json:"by"`
	Project string   `json:"project"`
	Pages   []Record `json:"pages"`
}

// SeriesArgs contains parameters for fetching a raw time series
type SeriesArgs struct {
	Metric        string `json:"metric" jsonschema:"edits, net-bytes-diff, absolute-bytes-diff, new-pages or edited-pages"`
	Start         string `json:"start" jsonschema:"Start date"`
	End           string `json:"end" jsonschema:"End date"`
	Granularity   string `json:"granularity,omitempty" jsonschema:"daily or monthly (default: daily)"`
	Project       string `json:"project,omitempty" jsonschema:"Wikimedia project domain (default: all-projects)"`
	PageTitle     string `json:"page_title,omitempty" jsonschema:"Page title for per-page series (edits and byte metrics only)"`
	EditorType    string `json:"editor_type,omitempty" jsonschema:"Editor type filter (default: all-editor-types)"`
	PageType      string `json:"page_type,omitempty" jsonschema:"Page type filter (default: all-page-types)"`
	ActivityLevel string `json:"activity_level,omitempty" jsonschema:"Activity level for edited-pages (default: all-activity-levels)"`
}

// SeriesResult is a raw time series
type SeriesResult struct {
	Metric      string   `json:"metric"`
	Granularity string   `json:"granularity"`
	Project     string   `json:"project"`
	PageTitle   string   `json:"page_title,omitempty"`
	Records     []Record `json:"records"`
}

// MetricField returns the record field holding metric, or false if metric is unknown.
func MetricField(metric string) (Field, bool) {
	switch metric {
	case MetricEdits:
		return FieldEdits, true
	case MetricNetBytesDiff:
		return FieldNetBytesDiff, true
	case MetricAbsBytesDiff:
		return FieldAbsBytesDiff, true
	case MetricNewPages:
		return FieldNewPages, true
	case MetricEditedPages:
		return FieldEditedPages, true
	}
	return nil, false
}

// RankField returns the record field a top ranking is ordered by. An empty
// value selects the edits ranking.
func RankField(by string) (Field, bool) {
	switch byOrDefault(by) {
	case ByEdits:
		return FieldEdits, true
	case ByNetDiff:
		return FieldNetBytesDiff, true
	case ByAbsDiff:
		return FieldAbsBytesDiff, true
	}
	return nil, false
}
