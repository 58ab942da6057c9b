package charts

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// PNGSignature is the 8-byte header every encoded image starts with
var PNGSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Encode rasterises the chart to PNG and releases its drawing surface. A
// chart can be encoded once; later calls fail with ErrEncode.
func Encode(c *Chart) ([]byte, error) {
	if c == nil {
		return nil, encodeError(errors.New("no chart"))
	}
	if c.Released() {
		return nil, encodeError(errors.New("chart was already encoded"))
	}
	defer c.release()

	var buf bytes.Buffer
	if err := c.graph.Render(chart.PNG, &buf); err != nil {
		return nil, encodeError(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), PNGSignature) {
		return nil, encodeError(fmt.Errorf("rasteriser produced %d bytes without a PNG header", buf.Len()))
	}
	return buf.Bytes(), nil
}

// release drops the drawing surface; the plotted points stay readable
func (c *Chart) release() {
	c.graph = nil
}
