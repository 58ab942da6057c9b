package dataset

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the file extension is neither .csv nor .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmptyDataset indicates the file parsed but has no columns or no data rows.
var ErrEmptyDataset = errors.New("empty dataset")

// ErrMalformedInput indicates the file content could not be parsed.
var ErrMalformedInput = errors.New("malformed input")

// LoadError describes why a file could not be turned into a Dataset.
// Kind is one of the Err* sentinels above; Err is the underlying cause.
type LoadError struct {
	Filename string
	Kind     error
	Err      error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load %q: %v", e.Filename, e.Kind)
	}
	return fmt.Sprintf("load %q: %v: %v", e.Filename, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is / errors.As.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newLoadError(filename string, kind, err error) *LoadError {
	return &LoadError{
		Filename: filename,
		Kind:     kind,
		Err:      err,
	}
}
