package charts

import (
	"math"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/dataset"
)

// axis maps the cells of one column onto plot coordinates. Numbers are used
// as-is, times become Unix seconds and text values are placed at 0, 1, 2...
// in order of first appearance.
type axis struct {
	typ        dataset.Type
	categories []string
	positions  map[string]int
}

func newAxis(col *dataset.Column) *axis {
	a := &axis{typ: col.Type}
	if col.Type != dataset.Text {
		return a
	}
	a.positions = make(map[string]int)
	for _, v := range col.Values {
		if v.Missing {
			continue
		}
		if _, ok := a.positions[v.Raw]; !ok {
			a.positions[v.Raw] = len(a.categories)
			a.categories = append(a.categories, v.Raw)
		}
	}
	return a
}

// value returns the plot coordinate of v and false when v cannot be placed
func (a *axis) value(v dataset.Value) (float64, bool) {
	if v.Missing {
		return 0, false
	}
	switch a.typ {
	case dataset.Number:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return 0, false
		}
		return v.Num, true
	case dataset.Time:
		return unixSeconds(v.Time), true
	case dataset.Text:
		pos, ok := a.positions[v.Raw]
		return float64(pos), ok
	}
	return 0, false
}

// formatter renders tick values back into the column's domain
func (a *axis) formatter() chart.ValueFormatter {
	switch a.typ {
	case dataset.Time:
		return timeFormatter
	case dataset.Text:
		return func(v interface{}) string {
			if f, ok := v.(float64); ok {
				i := int(math.Round(f))
				if i >= 0 && i < len(a.categories) {
					return a.categories[i]
				}
			}
			return ""
		}
	default:
		return numberFormatter
	}
}

// ticks returns one tick per category; numeric and time axes use go-chart's
// generated ticks.
func (a *axis) ticks() []chart.Tick {
	if a.typ != dataset.Text {
		return nil
	}
	ticks := make([]chart.Tick, len(a.categories))
	for i, c := range a.categories {
		ticks[i] = chart.Tick{Value: float64(i), Label: c}
	}
	return ticks
}

// span returns the padded plot range for the axis
func (a *axis) span(values []float64) *chart.ContinuousRange {
	if a.typ == dataset.Text {
		return &chart.ContinuousRange{Min: -0.5, Max: float64(len(a.categories)) - 0.5}
	}
	lo, hi := bounds(values)
	return pad(lo, hi, a.typ == dataset.Time)
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// pad widens [lo, hi] by 5% on each side. A single value gets a unit-wide
// range around it (one hour for times).
func pad(lo, hi float64, isTime bool) *chart.ContinuousRange {
	if lo == hi {
		half := 0.5
		if isTime {
			half = 60 * secondsPerMinute
		} else if lo != 0 {
			half = math.Max(half, math.Abs(lo)*0.05)
		}
		return &chart.ContinuousRange{Min: lo - half, Max: hi + half}
	}
	margin := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - margin, Max: hi + margin}
}

func numberFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', 6, 64)
	}
	return ""
}

const secondsPerMinute = 60

// unixSeconds places t on a float axis. Whole seconds and the fraction are
// converted separately so dates far from 1970 keep their position.
func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func fromUnixSeconds(f float64) time.Time {
	sec := math.Floor(f)
	return time.Unix(int64(sec), int64(math.Round((f-sec)*1e9))).UTC()
}

func timeFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	t := fromUnixSeconds(f)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}

// pairs returns the (x, y) points of every row where both cells can be placed
func pairs(xCol, yCol *dataset.Column, xa, ya *axis) []Point {
	points := make([]Point, 0, xCol.Len())
	for i := range xCol.Values {
		if i >= yCol.Len() {
			break
		}
		x, ok := xa.value(xCol.Values[i])
		if !ok {
			continue
		}
		y, ok := ya.value(yCol.Values[i])
		if !ok {
			continue
		}
		points = append(points, Point{X: x, Y: y, Label: xCol.Values[i].Raw})
	}
	return points
}
