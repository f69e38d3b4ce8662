package tools

// AllTools contains all tool specifications for the Wikimedia edit statistics server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// TOTALS
	// ==========================================================================
	{
		Name:     "wikimedia_edits",
		Method:   "Edits",
		Title:    "Count Edits",
		Category: "totals",
		Description: `Total number of edits on a Wikimedia project, or on one page, over a date range.

USE WHEN: User asks "how many edits did X get", "edit activity on en.wikipedia last month", "how often was page Y edited".

NOT FOR: Day-by-day numbers (use wikimedia_series). Most edited pages (use wikimedia_top).

PARAMETERS:
- start, end: Dates (required). Accepts 20240315, 2024-03-15, 03/15/2024, 15.03.2024, March 15, 2024
- project: e.g. en.wikipedia, de.wikipedia (default all-projects)
- page_title: Count only this page (optional, use underscores for spaces)
- editor_type: all-editor-types, anonymous, group-bot, name-bot, user
- page_type: all-page-types, content, non-content

RETURNS: Summed daily edit count.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikimedia_bytes",
		Method:   "Bytes",
		Title:    "Sum Byte Changes",
		Category: "totals",
		Description: `Total byte difference of edits on a project or page over a date range.

USE WHEN: User asks "how much content was added", "how many bytes changed on page Y", "net growth of de.wikipedia in 2023".

PARAMETERS:
- start, end: Dates (required)
- diff_type: absolute (sum of |change|, default) or net (additions minus removals, may be negative)
- project, page_title, editor_type, page_type: as for wikimedia_edits

RETURNS: Summed daily byte difference.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikimedia_pages",
		Method:   "Pages",
		Title:    "Count Pages",
		Category: "totals",
		Description: `Total number of created or edited pages on a project over a date range.

USE WHEN: User asks "how many new articles were created", "how many pages were edited last week".

PARAMETERS:
- start, end: Dates (required)
- change_type: new or edited (default edited)
- activity_level: for edited pages: all-activity-levels, 1..4-edits, 5..24-edits, 25..99-edits, 100..-edits
- project, editor_type, page_type: as for wikimedia_edits

RETURNS: Summed daily page count.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// RANKINGS AND SERIES
	// ==========================================================================
	{
		Name:     "wikimedia_top",
		Method:   "Top",
		Title:    "Top Pages",
		Category: "rankings",
		Description: `Most edited pages of a project on a single day.

USE WHEN: User asks "what were the most edited pages on X", "which articles grew most yesterday".

NOT FOR: Totals over a range (use wikimedia_edits or wikimedia_bytes).

PARAMETERS:
- date: Day to rank (required)
- by: edits (default), net-diff or absolute-diff
- count: Number of pages (default 10)
- project, editor_type, page_type: as for wikimedia_edits

RETURNS: Ranked pages in API order with page_title, rank and the ranking metric.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikimedia_series",
		Method:   "Series",
		Title:    "Metric Time Series",
		Category: "series",
		Description: `Raw daily or monthly time series of one edit metric.

USE WHEN: User asks "show edits per day", "monthly new pages for 2023", "plot byte changes of page Y".

PARAMETERS:
- metric: edits, net-bytes-diff, absolute-bytes-diff, new-pages, edited-pages (required)
- start, end: Dates (required)
- granularity: daily (default) or monthly
- page_title: Per-page series (edits and byte metrics only)
- project, editor_type, page_type, activity_level: as for the other tools

RETURNS: One record per time bucket with its timestamp and metric value.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}
