package wikimedia

import (
	apierrors "github.com/olgasafonova/wikiedits-mcp-server/internal/errors"
)

// Record is one entry of an API result list. Range endpoints fill Timestamp
// and one metric field; top endpoints fill PageTitle, Rank and one metric field.
// Metrics always serialize so a zero count is not dropped.
type Record struct {
	Timestamp    string `json:"timestamp,omitempty"`
	Edits        int64  `json:"edits"`
	NewPages     int64  `json:"new_pages"`
	EditedPages  int64  `json:"edited_pages"`
	AbsBytesDiff int64  `json:"abs_bytes_diff"`
	NetBytesDiff int64  `json:"net_bytes_diff"` // may be negative
	Project      string `json:"project,omitempty"`
	PageTitle    string `json:"page_title,omitempty"`
	Rank         int    `json:"rank,omitempty"`
}

// Field selects one numeric metric of a Record
type Field func(Record) int64

// Metric fields
var (
	FieldEdits        Field = func(r Record) int64 { return r.Edits }
	FieldNewPages     Field = func(r Record) int64 { return r.NewPages }
	FieldEditedPages  Field = func(r Record) int64 { return r.EditedPages }
	FieldAbsBytesDiff Field = func(r Record) int64 { return r.AbsBytesDiff }
	FieldNetBytesDiff Field = func(r Record) int64 { return r.NetBytesDiff }
)

// Sum adds up field across records. An empty list sums to 0.
func Sum(records []Record, field Field) int64 {
	var total int64
	for _, r := range records {
		total += field(r)
	}
	return total
}

// rangeEnvelope is the body of aggregate and per-page endpoints:
//
//	{"items": [{"results": [...]}]}
//
// Pointers distinguish a missing field from an empty one.
type rangeEnvelope struct {
	Items *[]rangeItem `json:"items"`
}

type rangeItem struct {
	Results *[]Record `json:"results"`
}

func (e rangeEnvelope) records(endpoint string) ([]Record, error) {
	if e.Items == nil || len(*e.Items) == 0 {
		return nil, apierrors.NewMalformedResponseError(endpoint, "items")
	}
	results := (*e.Items)[0].Results
	if results == nil {
		return nil, apierrors.NewMalformedResponseError(endpoint, "items[0].results")
	}
	return *results, nil
}

// topEnvelope is the body of top-by endpoints:
//
//	{"items": [{"results": [{"top": [...]}]}]}
type topEnvelope struct {
	Items *[]topItem `json:"items"`
}

type topItem struct {
	Results *[]topResult `json:"results"`
}

type topResult struct {
	Top *[]Record `json:"top"`
}

func (e topEnvelope) records(endpoint string) ([]Record, error) {
	if e.Items == nil || len(*e.Items) == 0 {
		return nil, apierrors.NewMalformedResponseError(endpoint, "items")
	}
	results := (*e.Items)[0].Results
	if results == nil || len(*results) == 0 {
		return nil, apierrors.NewMalformedResponseError(endpoint, "items[0].results")
	}
	top := (*results)[0].Top
	if top == nil {
		return nil, apierrors.NewMalformedResponseError(endpoint, "items[0].results[0].top")
	}
	return *top, nil
}
