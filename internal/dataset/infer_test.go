package dataset

import (
	"testing"
	"time"
)

func TestInferColumn(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want Type
	}{
		{"integers", []string{"1", "2", "3"}, Number},
		{"floats with blanks", []string{"1.5", "", "NaN", "-2e3"}, Number},
		{"all missing", []string{"", "NA", "null"}, Number},
		{"iso dates", []string{"2024-01-01", "2024-02-01"}, Time},
		{"mixed date layouts", []string{"2024-01-01", "01/02/2024", "2024-03-01 10:00"}, Time},
		{"words", []string{"low", "high"}, Text},
		{"numbers and words", []string{"1", "two", "3"}, Text},
		{"dates and numbers", []string{"2024-01-01", "5"}, Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := inferColumn("c", tt.raw)
			if col.Type != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, col.Type)
			}
			if col.Len() != len(tt.raw) {
				t.Errorf("Expected %d values, got %d", len(tt.raw), col.Len())
			}
			for i, v := range col.Values {
				if v.Raw != tt.raw[i] {
					t.Errorf("Raw[%d] = %q, want %q", i, v.Raw, tt.raw[i])
				}
			}
		})
	}
}

func TestInferColumnValues(t *testing.T) {
	col := inferColumn("when", []string{"2024-06-01", " ", "2024-06-03T08:30:00"})
	if col.Type != Time {
		t.Fatalf("Expected time column, got %s", col.Type)
	}
	if !col.Values[0].Time.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected first time %v", col.Values[0].Time)
	}
	if !col.Values[1].Missing {
		t.Error("Expected whitespace cell to be missing")
	}
	if col.Values[2].Time.Hour() != 8 {
		t.Errorf("Unexpected third time %v", col.Values[2].Time)
	}
}

func TestTypeString(t *testing.T) {
	if Number.String() != "number" || Time.String() != "time" || Text.String() != "text" {
		t.Error("Unexpected type names")
	}
	if Type(9).String() != "Type(9)" {
		t.Errorf("Unexpected name for unknown type: %s", Type(9).String())
	}
}
