package minimap

import (
	"math"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/frame"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/layout"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/viewport"
)

// Source supplies what a redraw needs. The timeline controller implements it.
type Source interface {
	Layout() layout.Result
	FillFor(eventID int) model.Fill
}

// Minimap is the stateful overview. Bars are recomputed only when marked
// dirty; the indicator follows every scroll and zoom. Both are coalesced
// through a shared frame scheduler.
type Minimap struct {
	size  Size
	opts  Options
	sched *frame.Scheduler

	bars      []Bar
	indicator Indicator
	highlight *Bar
	resize    *resizeState
	redraws   int
}

// New creates a minimap that requests frames on sched.
func New(size Size, opts Options, sched *frame.Scheduler) *Minimap {
	if sched == nil {
		sched = &frame.Scheduler{}
	}
	return &Minimap{size: size, opts: opts, sched: sched}
}

func (m *Minimap) Size() Size { return m.size }

func (m *Minimap) Options() Options { return m.opts }

// Bars returns the bars from the last redraw.
func (m *Minimap) Bars() []Bar {
	return m.bars
}

// Indicator returns the indicator geometry as last updated. During an edge
// resize it is the live preview.
func (m *Minimap) Indicator() Indicator {
	if m.resize != nil && m.resize.hasPreview {
		return Indicator{Left: m.resize.preview.Left, Width: m.resize.preview.Width}
	}
	return m.indicator
}

// Redraws counts bar recomputations.
func (m *Minimap) Redraws() int {
	return m.redraws
}

// Projection returns the current geometry for painting.
func (m *Minimap) Projection() Projection {
	return Projection{Size: m.size, Bars: m.bars, Indicator: m.Indicator()}
}

// Resize changes the overview size and marks bars dirty.
func (m *Minimap) Resize(size Size) bool {
	m.size = size
	return m.Refresh(true)
}

// Refresh asks for an indicator update and, with redraw, a bar recompute on
// the next frame. It returns true when the caller must schedule that frame.
func (m *Minimap) Refresh(redraw bool) bool {
	w := frame.Indicator
	if redraw {
		w |= frame.Redraw
	}
	return m.sched.Request(w)
}

// Apply runs the minimap part of a flushed frame.
func (m *Minimap) Apply(work frame.Work, src Source, vp *viewport.State) {
	if work.Has(frame.Redraw) {
		m.redraw(src)
	}
	if work.Has(frame.Indicator) || work.Has(frame.Redraw) {
		m.updateIndicator(vp)
	}
}

func (m *Minimap) redraw(src Source) {
	res := src.Layout()
	m.bars = ProjectBars(res, src.FillFor, m.size, m.opts)
	m.redraws++
	debug.Log("minimap: redraw %d bars (lanes=%d)", len(m.bars), res.ActiveLaneCount)
}

func (m *Minimap) updateIndicator(vp *viewport.State) {
	m.indicator = ProjectIndicator(vp.Scroll(), vp.ViewportWidth(), vp.ContentWidth(), m.size.Width)
}

// Navigate centers the main viewport on the content position under a
// minimap x coordinate. The result is clamped to the valid scroll range.
func (m *Minimap) Navigate(x float64, vp *viewport.State) bool {
	if m.size.Width <= 0 {
		return false
	}
	ratio := math.Max(0, math.Min(x/m.size.Width, 1))
	target := ratio*vp.ContentWidth() - vp.ViewportWidth()/2
	vp.Pan(target)
	return m.Refresh(false)
}

// BeginDrag starts click-and-drag navigation at x.
func (m *Minimap) BeginDrag(x float64, vp *viewport.State) bool {
	vp.Begin(viewport.GestureDraggingMinimap)
	return m.Navigate(x, vp)
}

// Drag continues a navigation drag. It is ignored unless one is active.
func (m *Minimap) Drag(x float64, vp *viewport.State) bool {
	if vp.Gesture() != viewport.GestureDraggingMinimap {
		return false
	}
	return m.Navigate(x, vp)
}

// HitEdge reports whether x is within tolerance of an indicator edge.
func (m *Minimap) HitEdge(x, tolerance float64) (viewport.Edge, bool) {
	ind := m.Indicator().Visible(m.opts.MinVisibleWidth)
	switch {
	case math.Abs(x-ind.Left) <= tolerance:
		return viewport.EdgeLeft, true
	case math.Abs(x-ind.Right()) <= tolerance:
		return viewport.EdgeRight, true
	}
	return viewport.EdgeLeft, false
}

// Highlight marks one event's bar, as on hover in the main view.
func (m *Minimap) Highlight(p layout.Position, activeLanes int, contentWidth float64) {
	if contentWidth <= 0 {
		m.highlight = nil
		return
	}
	bar := ProjectBar(p, m.size.Width/contentWidth, NewRows(m.size.Height, activeLanes, m.opts), model.Fill{})
	m.highlight = &bar
}

// ClearHighlight removes the hover highlight.
func (m *Minimap) ClearHighlight() {
	m.highlight = nil
}

// Highlighted returns the highlighted bar, if any.
func (m *Minimap) Highlighted() (Bar, bool) {
	if m.highlight == nil {
		return Bar{}, false
	}
	return *m.highlight, true
}

// BarAt returns the topmost bar under a minimap point.
func (m *Minimap) BarAt(x, y float64) (Bar, bool) {
	for i := len(m.bars) - 1; i >= 0; i-- {
		b := m.bars[i]
		if x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height {
			return b, true
		}
	}
	return Bar{}, false
}
