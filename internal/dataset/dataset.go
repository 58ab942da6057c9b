// Package dataset turns uploaded CSV and XLSX files into typed, immutable
// in-memory tables.
package dataset

import (
	"fmt"
	"time"
)

// Type is the inferred type of a column
type Type int

const (
	// Number columns hold float64 values (blank cells are missing)
	Number Type = iota
	// Time columns hold timestamps parsed from one of the supported layouts
	Time
	// Text columns keep the raw cell text
	Text
)

// String returns the name of the column type
func (t Type) String() string {
	switch t {
	case Number:
		return "number"
	case Time:
		return "time"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Value is a single cell. Raw always holds the cell text as read from the
// file; Num or Time is set according to the column type.
type Value struct {
	Raw     string
	Num     float64
	Time    time.Time
	Missing bool
}

// Column is a named, typed sequence of values
type Column struct {
	Name   string
	Type   Type
	Values []Value
}

// Len returns the number of values in the column
func (c *Column) Len() int {
	return len(c.Values)
}

// Present returns the number of non-missing values
func (c *Column) Present() int {
	n := 0
	for _, v := range c.Values {
		if !v.Missing {
			n++
		}
	}
	return n
}

// Dataset is an ordered set of equal-length columns. It is never modified
// after Load returns it.
type Dataset struct {
	source  string
	columns []Column
	index   map[string]int
	rows    int
}

func newDataset(source string, columns []Column) *Dataset {
	ds := &Dataset{
		source:  source,
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		ds.index[c.Name] = i
	}
	if len(columns) > 0 {
		ds.rows = columns[0].Len()
	}
	return ds
}

// Source returns the filename the dataset was loaded from
func (d *Dataset) Source() string {
	return d.source
}

// NumColumns returns the number of columns
func (d *Dataset) NumColumns() int {
	return len(d.columns)
}

// NumRows returns the number of data rows
func (d *Dataset) NumRows() int {
	return d.rows
}

// Columns returns the column names in file order
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether name is one of the dataset's columns
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column looks up a column by name and returns a copy of it, so changes to
// the result do not reach the dataset.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	c := d.columns[i]
	c.Values = append([]Value(nil), c.Values...)
	return &c, true
}
