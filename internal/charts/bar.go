package charts

import (
	"errors"
	"math"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/dataset"
)

// drawBar draws one bar per row at its x position, rising from zero to y
func (r *Renderer) drawBar(c *Chart, x, y *dataset.Column) error {
	if y.Type == dataset.Text {
		return renderError(y.Name, errors.New("bar heights must be numbers or dates, not text"))
	}
	xs, ys, err := plotted(c, x, y)
	if err != nil {
		return err
	}

	xRange := c.xAxis.span(xs)
	if c.xAxis.typ != dataset.Text {
		// leave room for the outer half bars
		half := barHalfWidth(xs)
		xRange.Min = math.Min(xRange.Min, minOf(xs)-half)
		xRange.Max = math.Max(xRange.Max, maxOf(xs)+half)
	}

	lo, hi := bounds(ys)
	yRange := pad(math.Min(0, lo), math.Max(0, hi), c.yAxis.typ == dataset.Time)
	if lo >= 0 && hi > 0 {
		yRange.Min = 0
	}
	if hi <= 0 && lo < 0 {
		yRange.Max = 0
	}

	graph := r.newGraph(c, c.xAxis, c.yAxis, xRange, yRange)
	graph.Series = []chart.Series{
		chart.HistogramSeries{
			Name: y.Name,
			Style: chart.Style{
				StrokeColor: seriesColor,
				StrokeWidth: 1,
				FillColor:   seriesColor.WithAlpha(220),
			},
			InnerSeries: chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
			},
		},
	}
	c.graph = graph
	return nil
}

// barHalfWidth is half the smallest gap between distinct x positions
func barHalfWidth(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	gap := math.Inf(1)
	for i := 1; i < len(sorted); i++ {
		if d := sorted[i] - sorted[i-1]; d > 0 && d < gap {
			gap = d
		}
	}
	if math.IsInf(gap, 1) {
		return 0.5
	}
	return gap * 0.4
}

func minOf(values []float64) float64 {
	lo, _ := bounds(values)
	return lo
}

func maxOf(values []float64) float64 {
	_, hi := bounds(values)
	return hi
}
