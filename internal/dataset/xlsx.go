package dataset

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// parseXLSX reads the first worksheet of a workbook. The first non-blank row
// is the header; blank rows are skipped and short rows are padded.
func parseXLSX(data []byte) (table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return table{}, fmt.Errorf("invalid xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table{}, fmt.Errorf("workbook has no worksheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var t table
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		if t.header == nil {
			t.header = trimTrailingBlanks(row)
			continue
		}
		width := len(t.header)
		if len(row) > width {
			for c := width; c < len(row); c++ {
				if strings.TrimSpace(row[c]) != "" {
					cell, _ := excelize.CoordinatesToCellName(c+1, i+1)
					return table{}, fmt.Errorf("sheet %q: cell %s lies outside the %d header columns", sheet, cell, width)
				}
			}
			row = row[:width]
		}
		padded := make([]string, width)
		copy(padded, row)
		t.rows = append(t.rows, padded)
	}
	return t, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimTrailingBlanks(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
