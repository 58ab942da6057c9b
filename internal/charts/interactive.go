package charts

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/dataset"
)

// Interactive returns a standalone ECharts page showing the same points or
// bins as the static image. It works on encoded charts too.
func Interactive(c *Chart) (string, error) {
	if c == nil {
		return "", renderError("", errors.New("no chart"))
	}

	var buf bytes.Buffer
	var err error
	switch c.Kind {
	case Line:
		err = interactiveLine(c).Render(&buf)
	case Bar:
		err = interactiveBar(c).Render(&buf)
	case Scatter:
		err = interactiveScatter(c).Render(&buf)
	case Histogram:
		err = interactiveHistogram(c).Render(&buf)
	default:
		err = fmt.Errorf("unknown plot type %s", c.Kind)
	}
	if err != nil {
		return "", renderError("", err)
	}
	return buf.String(), nil
}

func globalOptions(c *Chart, yType string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Title,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: c.Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      c.XLabel,
			AxisLabel: &opts.AxisLabel{Show: true, Rotate: 90},
		}),
		charts.WithYAxisOpts(yAxisOptions(c, yType)),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type: "inside",
		}),
	}
}

func yAxisOptions(c *Chart, yType string) opts.YAxis {
	y := opts.YAxis{
		Name: c.YLabel,
		Type: yType,
	}
	if yType == "category" {
		y.Data = c.yAxis.categories
	}
	return y
}

// categoryLabels returns the x cell of every point as shown on the axis
func categoryLabels(c *Chart) []string {
	labels := make([]string, len(c.Points))
	for i, p := range c.Points {
		if c.xAxis != nil && c.xAxis.typ == dataset.Time {
			labels[i] = timeFormatter(p.X)
		} else {
			labels[i] = p.Label
		}
	}
	return labels
}

// yValue converts a plot coordinate for ECharts; times become milliseconds
// and text values their category index
func yValue(c *Chart, y float64) (interface{}, string) {
	if c.yAxis != nil {
		switch c.yAxis.typ {
		case dataset.Time:
			return int64(math.Round(y * 1000)), "time"
		case dataset.Text:
			return int(y), "category"
		}
	}
	return y, "value"
}

func interactiveLine(c *Chart) *charts.Line {
	yType := "value"
	data := make([]opts.LineData, len(c.Points))
	for i, p := range c.Points {
		var v interface{}
		v, yType = yValue(c, p.Y)
		data[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(c, yType)...)
	line.SetXAxis(categoryLabels(c)).
		AddSeries(c.YLabel, data).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: false}))
	return line
}

func interactiveBar(c *Chart) *charts.Bar {
	yType := "value"
	data := make([]opts.BarData, len(c.Points))
	for i, p := range c.Points {
		var v interface{}
		v, yType = yValue(c, p.Y)
		data[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(c, yType)...)
	bar.SetXAxis(categoryLabels(c)).
		AddSeries(c.YLabel, data)
	return bar
}

func interactiveScatter(c *Chart) *charts.Scatter {
	yType := "value"
	data := make([]opts.ScatterData, len(c.Points))
	for i, p := range c.Points {
		var v interface{}
		v, yType = yValue(c, p.Y)
		data[i] = opts.ScatterData{Value: v, SymbolSize: 8}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(globalOptions(c, yType)...)
	scatter.SetXAxis(categoryLabels(c)).
		AddSeries(c.YLabel, data)
	return scatter
}

func interactiveHistogram(c *Chart) *charts.Bar {
	format := numberFormatter
	if c.yAxis != nil && c.yAxis.typ == dataset.Time {
		format = timeFormatter
	}

	labels := make([]string, len(c.Bins))
	data := make([]opts.BarData, len(c.Bins))
	for i, b := range c.Bins {
		labels[i] = fmt.Sprintf("%s to %s", format(b.Lo), format(b.Hi))
		data[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(c, "value")...)
	bar.SetXAxis(labels).
		AddSeries(c.YLabel, data, charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "0%"}))
	return bar
}
