package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parseCSV reads comma-separated records. Blank lines are skipped and every
// record must have as many fields as the header.
func parseCSV(data []byte) (table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	// 0: the header fixes the field count for every following record
	r.FieldsPerRecord = 0

	var t table
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) && errors.Is(pe.Err, csv.ErrFieldCount) {
				return table{}, fmt.Errorf("line %d has %d fields, header has %d", pe.StartLine, len(record), len(t.header))
			}
			return table{}, fmt.Errorf("invalid csv: %w", err)
		}
		if t.header == nil {
			t.header = record
			continue
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}
