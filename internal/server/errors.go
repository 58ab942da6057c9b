package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/charts"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/dataset"
)

// errNoUpload is returned when a session plots before uploading a file
var errNoUpload = errors.New("no file uploaded")

// requestError describes a malformed form submission
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...interface{}) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// failure is what a client is told about an error
type failure struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

// userMessage maps each error kind to a status code and a message for the page
func userMessage(err error) failure {
	var tooLarge *http.MaxBytesError
	var bad *requestError

	switch {
	case errors.As(err, &tooLarge):
		return failure{http.StatusRequestEntityTooLarge, "upload_too_large",
			fmt.Sprintf("The file is larger than the %d MB upload limit.", tooLarge.Limit>>20)}
	case errors.Is(err, dataset.ErrUnsupportedFormat):
		return failure{http.StatusUnsupportedMediaType, "unsupported_format",
			"Unsupported file type. Please upload a .csv or .xlsx file."}
	case errors.Is(err, dataset.ErrEmptyDataset):
		return failure{http.StatusUnprocessableEntity, "empty_dataset",
			"The uploaded file has no data to plot."}
	case errors.Is(err, dataset.ErrMalformedInput):
		return failure{http.StatusBadRequest, "malformed_input",
			"Error: the file could not be read. " + cause(err)}
	case errors.Is(err, charts.ErrInvalidColumnSelection):
		return failure{http.StatusBadRequest, "invalid_column_selection",
			"Please select existing columns and a plot type. " + cause(err)}
	case errors.Is(err, charts.ErrRenderFailure):
		return failure{http.StatusUnprocessableEntity, "render_failure",
			"Error: the selected columns cannot be plotted. " + cause(err)}
	case errors.Is(err, charts.ErrEncode):
		return failure{http.StatusInternalServerError, "encode_error",
			"Error: the plot could not be saved as PNG."}
	case errors.Is(err, errNoUpload):
		return failure{http.StatusBadRequest, "no_upload",
			"Upload a CSV or XLSX file first."}
	case errors.As(err, &bad):
		return failure{http.StatusBadRequest, "bad_request", capitalize(bad.msg) + "."}
	}
	return failure{http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again."}
}

// cause returns the most specific detail of a load or render error
func cause(err error) string {
	var le *dataset.LoadError
	if errors.As(err, &le) && le.Err != nil {
		return capitalize(le.Err.Error()) + "."
	}
	var ce *charts.Error
	if errors.As(err, &ce) {
		detail := ""
		if ce.Err != nil {
			detail = ce.Err.Error()
		}
		if ce.Column != "" {
			detail = fmt.Sprintf("Column %q: %s", ce.Column, detail)
		}
		return capitalize(detail) + "."
	}
	return capitalize(err.Error()) + "."
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
