package data

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is the only error kind the charge loader produces.
var ErrMalformedInput = errors.New("malformed input")

// ParseError describes where a charge description failed to parse.
// Index is -1 for document-level failures.
type ParseError struct {
	Index  int
	Field  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "malformed input"
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s: charge %d", msg, e.Index)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: field %q", msg, e.Field)
	}
	if e.Reason != "" {
		msg = msg + ": " + e.Reason
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedInput, e.Err}
	}
	return []error{ErrMalformedInput}
}
