// Package export renders a timeline snapshot to static artifacts (SVG, PNG,
// JSON and an HTML page) and serves them through a local preview server.
package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/categories"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/timeline"
)

// SVGOptions style the full-width timeline drawing.
type SVGOptions struct {
	Background string
	AxisColor  string
	LabelColor string
	AxisHeight int // space below the events layer for the line and years
	FontFamily string
}

// DefaultSVGOptions returns the stock dark theme.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Background: "#1e1e2e",
		AxisColor:  "#cdd6f4",
		LabelColor: "#cdd6f4",
		AxisHeight: 60,
		FontFamily: "sans-serif",
	}
}

// WriteSVG draws every visible block of the snapshot at full content width.
func WriteSVG(w io.Writer, s timeline.Snapshot, opts SVGOptions) error {
	width := int(math.Ceil(s.Layout.ContentWidth))
	if width <= 0 {
		return fmt.Errorf("write svg: empty layout")
	}
	m := s.Metrics
	pushUp := m.PushUpOffset(s.Layout.ActiveLaneCount)
	layerH := int(math.Ceil(m.LayerHeight))
	height := layerH + opts.AxisHeight

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("Timeline %d-%d", s.Years.Min, s.Years.Max))

	gradients := writeGradients(canvas, s.Blocks)

	canvas.Rect(0, 0, width, height, "fill:"+opts.Background)

	axisY := round(m.LayerHeight - pushUp + 8)
	canvas.Line(0, axisY, width, axisY, fmt.Sprintf("stroke:%s;stroke-width:2", opts.AxisColor))

	labelStyle := fmt.Sprintf("fill:%s;font-family:%s;font-size:%dpx", opts.LabelColor, opts.FontFamily, labelSize(s.CondensedLabels))
	canvas.Gstyle(labelStyle)
	for _, l := range s.Labels {
		x := round(l.X)
		canvas.Line(x, axisY, x, axisY+6, "stroke:"+opts.AxisColor)
		canvas.Text(x+2, axisY+20, fmt.Sprintf("%d", l.Year))
	}
	canvas.Gend()

	eventH := round(m.EventHeight)
	for _, b := range s.Blocks {
		x, y, bw := round(b.Position.Left), round(b.Top), round(b.Position.Width)
		fill := "fill:" + b.Fill.Primary()
		if id, ok := gradients[b.Position.EventID]; ok {
			fill = fmt.Sprintf("fill:url(#%s)", id)
		}
		canvas.Gid(fmt.Sprintf("event-%d", b.Position.EventID))
		canvas.Roundrect(x, y, bw, eventH, 4, 4, fill)
		if b.ShowLabel {
			canvas.Text(x+6, y+eventH/2+5, b.Title, fmt.Sprintf("fill:%s;font-family:%s;font-size:13px",
				categories.Contrast(b.Fill.Primary()), opts.FontFamily))
		}
		canvas.Gend()
	}

	canvas.End()
	return nil
}

// writeGradients emits one <linearGradient> per multi-color block.
func writeGradients(canvas *svg.SVG, blocks []timeline.Block) map[int]string {
	ids := make(map[int]string)
	for _, b := range blocks {
		if b.Fill.Kind == model.FillGradient {
			ids[b.Position.EventID] = fmt.Sprintf("g%d", b.Position.EventID)
		}
	}
	if len(ids) == 0 {
		return ids
	}

	canvas.Def()
	for _, b := range blocks {
		id, ok := ids[b.Position.EventID]
		if !ok {
			continue
		}
		stops := make([]svg.Offcolor, len(b.Fill.Stops))
		for i, st := range b.Fill.Stops {
			stops[i] = svg.Offcolor{Offset: uint8(math.Round(st.Offset * 100)), Color: st.Color, Opacity: 1}
		}
		// 135deg runs from the top-left corner to the bottom-right.
		canvas.LinearGradient(id, 0, 0, 100, 100, stops)
	}
	canvas.DefEnd()
	return ids
}

func labelSize(condensed bool) int {
	if condensed {
		return 11
	}
	return 13
}

func round(f float64) int {
	return int(math.Round(f))
}
