package dataset

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Format is a supported upload format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Extensions lists the accepted file extensions, for upload widgets
var Extensions = []string{".csv", ".xlsx"}

// DetectFormat infers the file format from the filename extension
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	if ext == "" {
		return "", newLoadError(filename, ErrUnsupportedFormat, fmt.Errorf("file has no extension, expected one of %s", strings.Join(Extensions, ", ")))
	}
	return "", newLoadError(filename, ErrUnsupportedFormat, fmt.Errorf("extension %q is not one of %s", ext, strings.Join(Extensions, ", ")))
}

// Load parses data as the format implied by filename. Column names come from
// the first row. The returned Dataset does not reference data.
//
// Every error is a *LoadError matching exactly one of ErrUnsupportedFormat,
// ErrEmptyDataset or ErrMalformedInput.
func Load(data []byte, filename string) (*Dataset, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, newLoadError(filename, ErrEmptyDataset, fmt.Errorf("file is empty"))
	}

	var t table
	switch format {
	case FormatCSV:
		t, err = parseCSV(data)
	case FormatXLSX:
		t, err = parseXLSX(data)
	}
	if err != nil {
		return nil, newLoadError(filename, ErrMalformedInput, err)
	}

	if len(t.header) == 0 {
		return nil, newLoadError(filename, ErrEmptyDataset, fmt.Errorf("no header row"))
	}
	if len(t.rows) == 0 {
		return nil, newLoadError(filename, ErrEmptyDataset, fmt.Errorf("header has %d columns but there are no data rows", len(t.header)))
	}

	return newDataset(filename, buildColumns(t)), nil
}

// table is the untyped result of a format parser. Every row has exactly
// len(header) cells.
type table struct {
	header []string
	rows   [][]string
}

func buildColumns(t table) []Column {
	names := columnNames(t.header)
	columns := make([]Column, len(names))
	raw := make([]string, len(t.rows))
	for i, name := range names {
		for r, row := range t.rows {
			raw[r] = row[i]
		}
		columns[i] = inferColumn(name, raw)
	}
	return columns
}

// columnNames names blank headers "Unnamed: <index>" and de-duplicates
// repeated names as name.1, name.2, ...
func columnNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if used[name] {
			base := name
			for k := 1; used[name]; k++ {
				name = base + "." + strconv.Itoa(k)
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}
