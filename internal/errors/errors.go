// Package errors provides shared error types for the Wikimedia analytics client.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies an error category for programmatic handling
type ErrorCode string

const (
	CodeInvalidDate        ErrorCode = "INVALID_DATE"
	CodeInvalidRange       ErrorCode = "INVALID_RANGE"
	CodeInvalidGranularity ErrorCode = "INVALID_GRANULARITY"
	CodeInvalidSelector    ErrorCode = "INVALID_SELECTOR"
	CodeValidation         ErrorCode = "VALIDATION_FAILED"
	CodeMalformedResponse  ErrorCode = "MALFORMED_RESPONSE"

	CodeTimeout     ErrorCode = "TRANSPORT_TIMEOUT"
	CodeConnection  ErrorCode = "TRANSPORT_CONNECTION"
	CodeHTTPStatus  ErrorCode = "TRANSPORT_HTTP_STATUS"
	CodeInvalidJSON ErrorCode = "TRANSPORT_INVALID_JSON"
	CodeRequest     ErrorCode = "TRANSPORT_REQUEST_FAILED"
)

// Coded is implemented by every error in this package.
type Coded interface {
	error
	ErrorCode() ErrorCode
}

// DateError indicates a date string that is empty, absent or unparseable.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date format: %q: expected YYYYMMDD or a parseable date string", e.Value)
}

// ErrorCode returns CodeInvalidDate
func (e *DateError) ErrorCode() ErrorCode { return CodeInvalidDate }

// NewDateError creates a DateError for the given input.
func NewDateError(value string) *DateError {
	return &DateError{Value: value}
}

// RangeError indicates an unusable (start, end, granularity) combination.
type RangeError struct {
	Code        ErrorCode
	Granularity string
	Start       string
	End         string
	Message     string
}

func (e *RangeError) Error() string {
	if e.Code == CodeInvalidGranularity {
		return fmt.Sprintf("invalid granularity %q: %s", e.Granularity, e.Message)
	}
	return fmt.Sprintf("invalid date range %s..%s: %s", e.Start, e.End, e.Message)
}

// ErrorCode returns the range error code
func (e *RangeError) ErrorCode() ErrorCode { return e.Code }

// NewRangeError creates a RangeError for an end date that precedes the start date.
func NewRangeError(start, end string) *RangeError {
	return &RangeError{
		Code:    CodeInvalidRange,
		Start:   start,
		End:     end,
		Message: "end date must not be before start date",
	}
}

// NewGranularityError creates a RangeError for an unsupported granularity.
func NewGranularityError(granularity string) *RangeError {
	return &RangeError{
		Code:        CodeInvalidGranularity,
		Granularity: granularity,
		Message:     `must be "daily" or "monthly"`,
	}
}

// SelectorError indicates an unrecognized discriminator value.
type SelectorError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *SelectorError) Error() string {
	quoted := make([]string, len(e.Allowed))
	for i, a := range e.Allowed {
		quoted[i] = fmt.Sprintf("%q", a)
	}
	return fmt.Sprintf("invalid %s value %q: must be one of %s", e.Field, e.Value, strings.Join(quoted, ", "))
}

// ErrorCode returns CodeInvalidSelector
func (e *SelectorError) ErrorCode() ErrorCode { return CodeInvalidSelector }

// NewSelectorError creates a SelectorError.
func NewSelectorError(field, value string, allowed ...string) *SelectorError {
	return &SelectorError{
		Field:   field,
		Value:   value,
		Allowed: allowed,
	}
}

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value (may be empty)
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ErrorCode returns CodeValidation
func (e *ValidationError) ErrorCode() ErrorCode { return CodeValidation }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// TransportKind categorizes a failed HTTP exchange.
type TransportKind string

const (
	KindTimeout     TransportKind = "timeout"
	KindConnection  TransportKind = "connection"
	KindHTTPStatus  TransportKind = "http_status"
	KindInvalidJSON TransportKind = "invalid_json"
	KindRequest     TransportKind = "request"
)

// TransportError is the single error surfaced for any failed API request.
type TransportError struct {
	Kind       TransportKind
	URL        string
	StatusCode int    // set for KindHTTPStatus
	Body       string // response body text for KindHTTPStatus
	Err        error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("request timed out for URL: %s", e.URL)
	case KindConnection:
		return fmt.Sprintf("failed to connect to API: %s", e.URL)
	case KindHTTPStatus:
		return fmt.Sprintf("HTTP error %d: %s (URL: %s)", e.StatusCode, e.Body, e.URL)
	case KindInvalidJSON:
		return fmt.Sprintf("invalid JSON response from: %s", e.URL)
	default:
		if e.Err != nil {
			return fmt.Sprintf("request failed: %v", e.Err)
		}
		return "request failed"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrorCode maps the transport kind to its error code
func (e *TransportError) ErrorCode() ErrorCode {
	switch e.Kind {
	case KindTimeout:
		return CodeTimeout
	case KindConnection:
		return CodeConnection
	case KindHTTPStatus:
		return CodeHTTPStatus
	case KindInvalidJSON:
		return CodeInvalidJSON
	default:
		return CodeRequest
	}
}

// MalformedResponseError indicates a response envelope missing an expected field.
type MalformedResponseError struct {
	Endpoint string
	Field    string // path of the missing field, e.g. "items[0].results"
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: missing %s", e.Endpoint, e.Field)
}

// ErrorCode returns CodeMalformedResponse
func (e *MalformedResponseError) ErrorCode() ErrorCode { return CodeMalformedResponse }

// NewMalformedResponseError creates a MalformedResponseError.
func NewMalformedResponseError(endpoint, field string) *MalformedResponseError {
	return &MalformedResponseError{Endpoint: endpoint, Field: field}
}

// Code returns the ErrorCode of err, or "" when err carries none.
func Code(err error) ErrorCode {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}

// IsDate returns true if the error is a DateError.
func IsDate(err error) bool {
	var target *DateError
	return errors.As(err, &target)
}

// IsRange returns true if the error is a RangeError.
func IsRange(err error) bool {
	var target *RangeError
	return errors.As(err, &target)
}

// IsSelector returns true if the error is a SelectorError.
func IsSelector(err error) bool {
	var target *SelectorError
	return errors.As(err, &target)
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsTransport returns true if the error is a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsMalformedResponse returns true if the error is a MalformedResponseError.
func IsMalformedResponse(err error) bool {
	var target *MalformedResponseError
	return errors.As(err, &target)
}
