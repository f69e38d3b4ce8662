// Package dates normalizes human-entered dates into the YYYYMMDD form the
// Wikimedia analytics API expects, and adjusts query ranges to its granularity rules.
package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	apierrors "github.com/olgasafonova/wikiedits-mcp-server/internal/errors"
)

const (
	// Canonical is the layout of a normalized date
	Canonical = "20060102"

	// Daily and Monthly are the granularities the range endpoints accept
	Daily   = "daily"
	Monthly = "monthly"
)

// layouts are tried in order before falling back to free-form parsing.
// Slash dates are month-first, dot dates are day-first.
var layouts = []string{
	Canonical,
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"2.1.2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
}

var (
	weekdayPrefix = regexp.MustCompile(`(?i)^(mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)(day|nesday|sday|urday)?\.?,?\s+`)
	ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
)

// Normalize returns date in canonical YYYYMMDD form.
// An 8-digit string is returned as is, without calendar validation.
func Normalize(date string) (string, error) {
	if isCanonical(date) {
		return date, nil
	}
	t, err := parse(date)
	if err != nil {
		return "", err
	}
	return t.Format(Canonical), nil
}

// NormalizePtr is Normalize for optional input; nil is an invalid date.
func NormalizePtr(date *string) (string, error) {
	if date == nil {
		return "", apierrors.NewDateError("<nil>")
	}
	return Normalize(*date)
}

// Split returns the zero-padded year, month and day of date.
func Split(date string) (year, month, day string, err error) {
	if isCanonical(date) {
		return date[:4], date[4:6], date[6:8], nil
	}
	t, err := parse(date)
	if err != nil {
		return "", "", "", err
	}
	return t.Format("2006"), t.Format("01"), t.Format("02"), nil
}

// ValidateRange checks that end is not before start and returns both dates in
// canonical form. Equal dates are widened by one unit of granularity so the API
// receives a non-empty interval.
func ValidateRange(granularity, start, end string) (string, string, error) {
	s, err := parse(start)
	if err != nil {
		return "", "", err
	}
	e, err := parse(end)
	if err != nil {
		return "", "", err
	}

	if e.Before(s) {
		return "", "", apierrors.NewRangeError(s.Format(Canonical), e.Format(Canonical))
	}

	if e.Equal(s) {
		switch granularity {
		case Daily:
			e = s.AddDate(0, 0, 1)
		case Monthly:
			s = time.Date(s.Year(), s.Month(), 1, 0, 0, 0, 0, time.UTC)
			e = s.AddDate(0, 1, 0)
		default:
			return "", "", apierrors.NewGranularityError(granularity)
		}
	}

	return s.Format(Canonical), e.Format(Canonical), nil
}

// parse reads date as a calendar day at UTC midnight.
func parse(date string) (time.Time, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" || (isDigits(trimmed) && len(trimmed) != len(Canonical)) {
		return time.Time{}, apierrors.NewDateError(date)
	}

	cleaned := clean(trimmed)
	t, ok := parseLayouts(cleaned)
	if !ok {
		var err error
		t, err = dateparse.ParseIn(cleaned, time.UTC, dateparse.RetryAmbiguousDateWithSwap(true))
		if err != nil {
			return time.Time{}, apierrors.NewDateError(date)
		}
	}
	// time-only input parses to year zero
	if t.Year() <= 0 {
		return time.Time{}, apierrors.NewDateError(date)
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// clean drops a leading weekday name and ordinal suffixes ("Friday, March 15th").
func clean(s string) string {
	s = weekdayPrefix.ReplaceAllString(s, "")
	return ordinalSuffix.ReplaceAllString(s, "$1")
}

func parseLayouts(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isCanonical(s string) bool {
	return len(s) == len(Canonical) && isDigits(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
