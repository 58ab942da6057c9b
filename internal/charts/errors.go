package charts

import (
	"errors"
	"fmt"
)

// ErrInvalidColumnSelection indicates a requested column does not exist, the
// dataset is missing or the kind is unknown.
var ErrInvalidColumnSelection = errors.New("invalid column selection")

// ErrRenderFailure indicates the selected data cannot be drawn.
var ErrRenderFailure = errors.New("render failure")

// ErrEncode indicates the chart could not be turned into PNG bytes.
var ErrEncode = errors.New("encode error")

// Error is returned by Render, Encode and Interactive. Kind is one of the
// Err* sentinels above; Column names the offending selection when there is one.
type Error struct {
	Kind   error
	Column string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Column != "" {
		msg = fmt.Sprintf("%s: column %q", msg, e.Column)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func selectionError(column string, err error) *Error {
	return &Error{Kind: ErrInvalidColumnSelection, Column: column, Err: err}
}

func renderError(column string, err error) *Error {
	return &Error{Kind: ErrRenderFailure, Column: column, Err: err}
}

func encodeError(err error) *Error {
	return &Error{Kind: ErrEncode, Err: err}
}
