package dataset

import (
	"strconv"
	"strings"
	"time"
)

// missingMarkers are cell texts read as "no value"
var missingMarkers = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-NaN":     true,
	"-nan":     true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// timeLayouts are tried in order for every cell of a candidate time column
var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06", // excelize default date format
	"1/2/06 15:04",
	"02-Jan-2006",
	"Jan 2, 2006",
}

func isMissing(s string) bool {
	return missingMarkers[strings.TrimSpace(s)]
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferColumn types a column from its cells: numeric when
// every present cell is a number, time when every present cell is a date,
// text otherwise. An all-missing column is numeric.
func inferColumn(name string, raw []string) Column {
	values := make([]Value, len(raw))
	numeric, temporal := true, true
	for i, s := range raw {
		values[i].Raw = s
		if isMissing(s) {
			values[i].Missing = true
			continue
		}
		if numeric {
			if v, ok := parseNumber(s); ok {
				values[i].Num = v
			} else {
				numeric = false
			}
		}
		if temporal {
			if t, ok := parseTime(s); ok {
				values[i].Time = t
			} else {
				temporal = false
			}
		}
	}

	col := Column{Name: name, Values: values}
	switch {
	case numeric:
		col.Type = Number
	case temporal:
		col.Type = Time
	default:
		col.Type = Text
	}
	return col
}
