// Package minimap projects the laid-out timeline onto a small overview with
// a viewport indicator, and handles navigation and edge-resize gestures on it.
package minimap

import (
	"math"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/layout"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// Size is the minimap's pixel size.
type Size struct {
	Width  float64
	Height float64
}

// Options are the presentation constants of the overview.
type Options struct {
	BarGap            float64 // vertical gap inside a lane row
	MinBarHeight      float64
	MinIndicatorWidth float64 // narrowest indicator an edge resize may produce
	MinVisibleWidth   float64 // narrowest indicator ever drawn
}

// DefaultOptions mirrors the stock configuration.
func DefaultOptions() Options {
	return Options{BarGap: 4, MinBarHeight: 2, MinIndicatorWidth: 12, MinVisibleWidth: 4}
}

// Bar is one event drawn on the overview.
type Bar struct {
	EventID int        `json:"event_id"`
	Lane    int        `json:"lane"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Fill    model.Fill `json:"fill"`
}

// Indicator is the viewport rectangle on the overview.
type Indicator struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// Visible widens a too-narrow indicator for drawing only.
func (i Indicator) Visible(minWidth float64) Indicator {
	i.Width = math.Max(i.Width, minWidth)
	return i
}

// Right is the indicator's right edge.
func (i Indicator) Right() float64 {
	return i.Left + i.Width
}

// Projection is the full overview geometry.
type Projection struct {
	Size      Size      `json:"size"`
	Bars      []Bar     `json:"bars"`
	Indicator Indicator `json:"indicator"`
}

// FillFunc resolves an event's paint.
type FillFunc func(eventID int) model.Fill

// Rows describes how lanes split the minimap height.
type Rows struct {
	LaneHeight float64
	BarHeight  float64
	height     float64
}

// NewRows divides height among the active lanes (at least one).
func NewRows(height float64, activeLanes int, opts Options) Rows {
	lh := height / float64(max(activeLanes, 1))
	return Rows{
		LaneHeight: lh,
		BarHeight:  math.Max(lh-opts.BarGap, opts.MinBarHeight),
		height:     height,
	}
}

// Y is the top of a bar in the given lane. Lane 0 is at the bottom.
func (r Rows) Y(lane int) float64 {
	return r.height - float64(lane+1)*r.LaneHeight + (r.LaneHeight-r.BarHeight)/2
}

// LaneAt returns the lane under a minimap y coordinate.
func (r Rows) LaneAt(y float64) int {
	if r.LaneHeight <= 0 {
		return 0
	}
	return int(math.Floor((r.height - y) / r.LaneHeight))
}

// ProjectBar places a single event. It is also used for hover highlights.
func ProjectBar(p layout.Position, scaleX float64, rows Rows, fill model.Fill) Bar {
	return Bar{
		EventID: p.EventID,
		Lane:    p.LaneIndex,
		X:       p.Left * scaleX,
		Y:       rows.Y(p.LaneIndex),
		Width:   math.Max(p.Width*scaleX, 1),
		Height:  rows.BarHeight,
		Fill:    fill,
	}
}

// ProjectBars scales every positioned event onto the overview. A layout with
// no content width yields no bars.
func ProjectBars(res layout.Result, fill FillFunc, size Size, opts Options) []Bar {
	if res.ContentWidth <= 0 || size.Width <= 0 || size.Height <= 0 {
		return nil
	}
	scaleX := size.Width / res.ContentWidth
	rows := NewRows(size.Height, res.ActiveLaneCount, opts)

	bars := make([]Bar, 0, len(res.Positions))
	for _, p := range res.Positions {
		if p.Width <= 0 {
			continue
		}
		var f model.Fill
		if fill != nil {
			f = fill(p.EventID)
		}
		bars = append(bars, ProjectBar(p, scaleX, rows, f))
	}
	return bars
}

// ProjectIndicator maps the main viewport onto the overview:
// width = viewportWidth*minimapWidth/contentWidth and
// left = scrollOffset*minimapWidth/contentWidth.
func ProjectIndicator(scroll, viewportWidth, contentWidth, minimapWidth float64) Indicator {
	if contentWidth <= 0 {
		return Indicator{}
	}
	return Indicator{
		Left:  scroll * minimapWidth / contentWidth,
		Width: viewportWidth * minimapWidth / contentWidth,
	}
}

// Project computes bars and indicator in one go.
func Project(res layout.Result, fill FillFunc, scroll, viewportWidth float64, size Size, opts Options) Projection {
	return Projection{
		Size:      size,
		Bars:      ProjectBars(res, fill, size, opts),
		Indicator: ProjectIndicator(scroll, viewportWidth, res.ContentWidth, size.Width),
	}
}
