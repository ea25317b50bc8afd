package cronexp

import (
	"errors"
	"strings"
)

// Parse error kinds. Every *ParseError matches exactly one of them with errors.Is.
var (
	// ErrArgumentCount is returned when the expression does not have 5, 6 or 7 fields.
	ErrArgumentCount = errors.New("invalid number of fields, want 5 (classic) or 6-7 (extended)")

	// ErrMalformedInteger is returned when a numeric token does not parse.
	ErrMalformedInteger = errors.New("malformed integer")

	// ErrInvalidRange is returned when a value or range endpoint is outside
	// the field's domain, or a range is inverted.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidStepRange is returned when a step is malformed or not positive.
	ErrInvalidStepRange = errors.New("invalid step")

	// ErrInvalidMonthName is returned for an unrecognized month token.
	ErrInvalidMonthName = errors.New("invalid month")

	// ErrInvalidWeekdayName is returned for an unrecognized day-of-week token.
	ErrInvalidWeekdayName = errors.New("invalid day of week")

	// ErrSpecTooLong is returned when the expression exceeds MaxSpecLength.
	ErrSpecTooLong = errors.New("expression too long")
)

// ErrInvalidEncoding is returned when a binary schedule fails validation.
var ErrInvalidEncoding = errors.New("cronexp: invalid schedule encoding")

// ParseError describes why an expression was rejected.
type ParseError struct {
	Kind  error  // one of the Err* kinds above
	Field string // which field caused the error, empty for whole-expression errors
	Value string // the offending token
	Err   error  // optional underlying cause, such as a *strconv.NumError
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("cronexp: ")
	sb.WriteString(e.Kind.Error())
	if e.Field != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.Field)
	}
	if e.Value != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Value)
	}
	if e.Err != nil {
		sb.WriteString(" (")
		sb.WriteString(e.Err.Error())
		sb.WriteString(")")
	}
	return sb.String()
}

// Unwrap exposes the kind and the cause to errors.Is and errors.As.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newParseError(kind error, u Unit, value string) *ParseError {
	return &ParseError{Kind: kind, Field: u.String(), Value: value}
}
