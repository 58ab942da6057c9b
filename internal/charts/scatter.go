package charts

import (
	"github.com/wcharczuk/go-chart/v2"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/dataset"
)

func (r *Renderer) drawScatter(c *Chart, x, y *dataset.Column) error {
	xs, ys, err := plotted(c, x, y)
	if err != nil {
		return err
	}

	graph := r.newGraph(c, c.xAxis, c.yAxis, c.xAxis.span(xs), c.yAxis.span(ys))
	graph.Series = []chart.Series{
		chart.ContinuousSeries{
			Name: y.Name,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    seriesColor,
				DotWidth:    5,
			},
			XValues: xs,
			YValues: ys,
		},
	}
	c.graph = graph
	return nil
}
