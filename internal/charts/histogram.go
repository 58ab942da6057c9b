package charts

import (
	"errors"
	"fmt"

	"github.com/aclements/go-moremath/stats"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/dataset"
)

// HistogramBins is the fixed number of equal-width bins
const HistogramBins = 20

// drawHistogram bins the y column; the x column only supplies the axis label.
// The last bin includes the maximum value. When every value is equal the
// range is widened to [v-0.5, v+0.5]. Text columns cannot be binned.
func (r *Renderer) drawHistogram(c *Chart, y *dataset.Column) error {
	if y.Type == dataset.Text {
		return renderError(y.Name, errors.New("text values cannot be binned"))
	}
	var values []float64
	for _, v := range y.Values {
		if f, ok := c.yAxis.value(v); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return renderError(y.Name, fmt.Errorf("column %q has no values to bin", y.Name))
	}

	c.Bins = binValues(values, HistogramBins, c.yAxis.typ == dataset.Time)

	centers := make([]float64, len(c.Bins))
	counts := make([]float64, len(c.Bins))
	maxCount := 0
	for i, b := range c.Bins {
		centers[i] = (b.Lo + b.Hi) / 2
		counts[i] = float64(b.Count)
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	xRange := &chart.ContinuousRange{Min: c.Bins[0].Lo, Max: c.Bins[len(c.Bins)-1].Hi}
	yRange := &chart.ContinuousRange{Min: 0, Max: float64(maxCount) * 1.05}

	graph := r.newGraph(c, c.yAxis, &axis{typ: dataset.Number}, xRange, yRange)
	graph.Series = []chart.Series{
		chart.HistogramSeries{
			Name: y.Name,
			Style: chart.Style{
				StrokeColor: seriesColor.WithAlpha(255),
				StrokeWidth: 1,
				FillColor:   seriesColor.WithAlpha(200),
			},
			InnerSeries: chart.ContinuousSeries{
				XValues: centers,
				YValues: counts,
			},
		},
	}
	c.graph = graph
	return nil
}

// binValues splits [min, max] of values into n equal-width bins
func binValues(values []float64, n int, isTime bool) []Bin {
	lo, hi := bounds(values)
	if lo == hi {
		half := 0.5
		if isTime {
			half = 30 * secondsPerMinute
		}
		lo, hi = lo-half, hi+half
	}

	h := stats.NewLinearHist(lo, hi, n)
	for _, v := range values {
		h.Add(v)
	}
	_, counts, high := h.Counts()

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{
			Lo:    lo + float64(i)*width,
			Hi:    lo + float64(i+1)*width,
			Count: int(counts[i]),
		}
	}
	// values equal to hi fall just past the last bin
	bins[n-1].Count += int(high)
	bins[n-1].Hi = hi
	return bins
}
