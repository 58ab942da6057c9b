package charts

import (
	"fmt"
	"strings"
)

// Kind is the closed set of supported chart kinds
type Kind int

const (
	Line Kind = iota
	Bar
	Scatter
	Histogram
)

// Kinds returns every kind in the order the UI lists them
func Kinds() []Kind {
	return []Kind{Line, Bar, Scatter, Histogram}
}

// String returns the kind as it appears in chart titles
func (k Kind) String() string {
	switch k {
	case Line:
		return "Line"
	case Bar:
		return "Bar"
	case Scatter:
		return "Scatter"
	case Histogram:
		return "Histogram"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Label returns the name shown in the plot type selector
func (k Kind) Label() string {
	switch k {
	case Line, Bar, Scatter:
		return k.String() + " Plot"
	default:
		return k.String()
	}
}

// Valid reports whether k is one of the four supported kinds
func (k Kind) Valid() bool {
	return k >= Line && k <= Histogram
}

// ParseKind accepts a kind name ("line"), its selector label ("Line Plot")
// or its numeric value ("0"), case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, " plot")
	for _, k := range Kinds() {
		if name == strings.ToLower(k.String()) || name == fmt.Sprint(int(k)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown plot type %q", s)
}
