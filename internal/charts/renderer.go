// Package charts draws Line, Bar, Scatter and Histogram charts of two dataset
// columns with go-chart and encodes them as PNG.
package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/dataset"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/logger"
)

// Point is one plotted row. X and Y are plot coordinates (see axis); Label is
// the raw x cell.
type Point struct {
	X     float64
	Y     float64
	Label string
}

// Bin is one histogram bucket covering [Lo, Hi)
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Chart is a rendered figure. It owns its drawing surface until Encode
// releases it, so a Chart must not be shared between requests.
type Chart struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	// Points holds the drawn rows for Line, Bar and Scatter charts
	Points []Point
	// Bins holds the buckets of a Histogram
	Bins []Bin

	xAxis *axis
	yAxis *axis
	graph *chart.Chart
}

// Released reports whether Encode has already consumed the chart
func (c *Chart) Released() bool {
	return c == nil || c.graph == nil
}

// Options controls the size of the drawn figure in pixels
type Options struct {
	Width  int
	Height int
}

// DefaultOptions matches a 6.4x4.8 inch figure at 100 dpi
func DefaultOptions() Options {
	return Options{Width: 640, Height: 480}
}

// Renderer turns dataset columns into charts
type Renderer struct {
	opts Options
	log  *logger.Logger
}

// NewRenderer creates a renderer. Zero dimensions fall back to the defaults.
func NewRenderer(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	return &Renderer{
		opts: opts,
		log:  logger.Component("charts"),
	}
}

// Render draws yCol against xCol as the given kind using DefaultOptions
func Render(ds *dataset.Dataset, xCol, yCol string, kind Kind) (*Chart, error) {
	return NewRenderer(DefaultOptions()).Render(ds, xCol, yCol, kind)
}

// Render draws yCol against xCol. The x label is xCol, the y label is yCol and
// the title reads "{kind} of {yCol} vs {xCol}".
func (r *Renderer) Render(ds *dataset.Dataset, xCol, yCol string, kind Kind) (*Chart, error) {
	if ds == nil {
		return nil, selectionError("", errors.New("no dataset loaded"))
	}
	if !kind.Valid() {
		return nil, selectionError("", fmt.Errorf("unknown plot type %s", kind))
	}
	x, ok := ds.Column(xCol)
	if !ok {
		return nil, selectionError(xCol, errors.New("not found in dataset"))
	}
	y, ok := ds.Column(yCol)
	if !ok {
		return nil, selectionError(yCol, errors.New("not found in dataset"))
	}

	c := &Chart{
		Kind:   kind,
		Title:  fmt.Sprintf("%s of %s vs %s", kind, yCol, xCol),
		XLabel: xCol,
		YLabel: yCol,
		xAxis:  newAxis(x),
		yAxis:  newAxis(y),
	}

	var err error
	switch kind {
	case Line:
		err = r.drawLine(c, x, y)
	case Bar:
		err = r.drawBar(c, x, y)
	case Scatter:
		err = r.drawScatter(c, x, y)
	case Histogram:
		err = r.drawHistogram(c, y)
	}
	if err != nil {
		return nil, err
	}

	// Draw once onto a vector surface so drawing errors surface here and
	// not at encode time.
	if err := c.graph.Render(chart.SVG, io.Discard); err != nil {
		return nil, renderError("", err)
	}

	r.log.Debug("Chart rendered", logger.Fields{
		"kind":   kind.String(),
		"x":      xCol,
		"y":      yCol,
		"points": len(c.Points),
		"bins":   len(c.Bins),
	})
	return c, nil
}

// newGraph builds the figure shared by every kind: title, labelled axes and
// x tick labels rotated 90 degrees.
func (r *Renderer) newGraph(c *Chart, xa, ya *axis, xRange, yRange *chart.ContinuousRange) *chart.Chart {
	return &chart.Chart{
		Title: c.Title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Width:  r.opts.Width,
		Height: r.opts.Height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  30,
				Bottom: 20,
			},
		},
		XAxis: chart.XAxis{
			Name: c.XLabel,
			NameStyle: chart.Style{
				FontSize: 11,
			},
			Style: chart.Style{
				FontSize:            9,
				TextRotationDegrees: 90,
			},
			ValueFormatter: xa.formatter(),
			Range:          xRange,
			Ticks:          xa.ticks(),
		},
		YAxis: chart.YAxis{
			Name: c.YLabel,
			NameStyle: chart.Style{
				FontSize: 11,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: ya.formatter(),
			Range:          yRange,
			Ticks:          ya.ticks(),
		},
	}
}

// seriesColor is the blue every series is drawn in
var seriesColor = drawing.Color{R: 31, G: 119, B: 180, A: 255}

func coordinates(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

// plotted collects the drawable rows or fails when there are none
func plotted(c *Chart, x, y *dataset.Column) ([]float64, []float64, error) {
	c.Points = pairs(x, y, c.xAxis, c.yAxis)
	if len(c.Points) == 0 {
		return nil, nil, renderError("", fmt.Errorf("no rows have values in both %q and %q", x.Name, y.Name))
	}
	xs, ys := coordinates(c.Points)
	return xs, ys, nil
}
