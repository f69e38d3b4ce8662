package wikimedia

import (
	"strings"

	"github.com/olgasafonova/wikiedits-mcp-server/internal/dates"
	apierrors "github.com/olgasafonova/wikiedits-mcp-server/internal/errors"
)

// Default path segment values
const (
	DefaultProject       = "all-projects"
	DefaultEditorType    = "all-editor-types"
	DefaultPageType      = "all-page-types"
	DefaultActivityLevel = "all-activity-levels"
	DefaultGranularity   = dates.Daily
)

// RangeQuery selects a time range of one endpoint. All string fields are
// inserted into the URL path verbatim.
type RangeQuery struct {
	Project       string // required, e.g. "en.wikipedia" or "all-projects"
	PageTitle     string // required by per-page endpoints, ignored elsewhere
	EditorType    string // default "all-editor-types"
	PageType      string // default "all-page-types"; not used by per-page endpoints
	ActivityLevel string // default "all-activity-levels"; edited-pages only
	Granularity   string // default "daily"
	Start         string
	End           string

	BaseURL string // overrides the client base URL when set
}

func (q RangeQuery) withDefaults() RangeQuery {
	if q.EditorType == "" {
		q.EditorType = DefaultEditorType
	}
	if q.PageType == "" {
		q.PageType = DefaultPageType
	}
	if q.ActivityLevel == "" {
		q.ActivityLevel = DefaultActivityLevel
	}
	if q.Granularity == "" {
		q.Granularity = DefaultGranularity
	}
	return q
}

// TopQuery selects the ranked pages of a single day.
type TopQuery struct {
	Project    string // required
	EditorType string // default "all-editor-types"
	PageType   string // default "all-page-types"
	Date       string

	BaseURL string
}

func (q TopQuery) withDefaults() TopQuery {
	if q.EditorType == "" {
		q.EditorType = DefaultEditorType
	}
	if q.PageType == "" {
		q.PageType = DefaultPageType
	}
	return q
}

// pathLayout is the segment order an endpoint family expects
type pathLayout int

const (
	layoutAggregate pathLayout = iota // project/editor/page-type/granularity/start/end
	layoutPerPage                     // project/title/editor/granularity/start/end
	layoutActivity                    // project/editor/page-type/activity/granularity/start/end
)

// rangeArgs validates q and returns the "/"-joined argument path.
func rangeArgs(layout pathLayout, q RangeQuery) (string, error) {
	if q.Project == "" {
		return "", apierrors.NewValidationError("project", "", "is required")
	}
	if layout == layoutPerPage && q.PageTitle == "" {
		return "", apierrors.NewValidationError("page_title", "", "is required for per-page queries")
	}

	start, end, err := dates.ValidateRange(q.Granularity, q.Start, q.End)
	if err != nil {
		return "", err
	}

	var segments []string
	switch layout {
	case layoutPerPage:
		segments = []string{q.Project, q.PageTitle, q.EditorType, q.Granularity, start, end}
	case layoutActivity:
		segments = []string{q.Project, q.EditorType, q.PageType, q.ActivityLevel, q.Granularity, start, end}
	default:
		segments = []string{q.Project, q.EditorType, q.PageType, q.Granularity, start, end}
	}
	return strings.Join(segments, "/"), nil
}

// topArgs validates q and returns the "/"-joined argument path.
func topArgs(q TopQuery) (string, error) {
	if q.Project == "" {
		return "", apierrors.NewValidationError("project", "", "is required")
	}
	year, month, day, err := dates.Split(q.Date)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{q.Project, q.EditorType, q.PageType, year, month, day}, "/"), nil
}
