package minimap

import (
	"math"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/viewport"
)

// Bounds are the indicator widths an edge resize may produce. They follow
// from the scale limits: the widest indicator is the furthest zoom-out.
type Bounds struct {
	Min float64
	Max float64
}

// WidthBounds derives resize limits for the current viewport. ok is false
// when there is no content to resize against.
func WidthBounds(vp *viewport.State, minimapWidth, minIndicatorWidth float64) (Bounds, bool) {
	span := float64(vp.Years().Span())
	if span <= 0 || vp.ContentWidth() <= 0 || minimapWidth <= 0 {
		return Bounds{}, false
	}
	minScale, maxScale := vp.Limits()
	base := vp.ViewportWidth() * minimapWidth
	lo := base / (span * maxScale)
	hi := base / (span * minScale)
	return Bounds{Min: math.Max(minIndicatorWidth, lo), Max: math.Max(lo, hi)}, true
}

// Preview is the live state of an edge resize. The real scale is untouched
// until the gesture commits.
type Preview struct {
	Side   viewport.Edge
	Left   float64
	Width  float64
	Scale  float64
	Anchor viewport.Anchor
}

// ResizePreview computes the indicator and candidate scale for dragging side
// to pointer x. The anchor pins the opposite edge at its current content
// fraction.
func ResizePreview(side viewport.Edge, pointerX float64, vp *viewport.State, minimapWidth, minIndicatorWidth float64) (Preview, bool) {
	bounds, ok := WidthBounds(vp, minimapWidth, minIndicatorWidth)
	if !ok {
		return Preview{}, false
	}

	cw := vp.ContentWidth()
	scaleX := minimapWidth / cw
	curLeft := vp.Scroll() * scaleX
	curWidth := vp.ViewportWidth() * scaleX

	var desired float64
	if side == viewport.EdgeLeft {
		anchorRight := curLeft + curWidth
		newLeft := math.Min(math.Max(pointerX, 0), anchorRight-bounds.Min)
		desired = anchorRight - newLeft
	} else {
		newRight := math.Max(math.Min(pointerX, minimapWidth), curLeft+bounds.Min)
		desired = newRight - curLeft
	}
	desired = math.Min(math.Max(desired, bounds.Min), bounds.Max)

	span := float64(vp.Years().Span())
	scale := vp.ClampScale(vp.ViewportWidth() * minimapWidth / (desired * span))

	opposite := side.Opposite()
	left := curLeft
	if opposite == viewport.EdgeRight {
		left = curLeft + curWidth - desired
	}

	return Preview{
		Side:   side,
		Left:   left,
		Width:  desired,
		Scale:  scale,
		Anchor: viewport.EdgeAnchor(opposite, vp.EdgeFraction(opposite)),
	}, true
}

type resizeState struct {
	side       viewport.Edge
	preview    Preview
	hasPreview bool
}

// BeginResize starts dragging one edge of the indicator.
func (m *Minimap) BeginResize(side viewport.Edge, pointerX float64, vp *viewport.State) bool {
	vp.Begin(viewport.GestureResizingMinimapEdge)
	m.resize = &resizeState{side: side}
	return m.ResizeTo(pointerX, vp)
}

// Resizing reports whether an edge resize is in progress.
func (m *Minimap) Resizing() (viewport.Edge, bool) {
	if m.resize == nil {
		return viewport.EdgeLeft, false
	}
	return m.resize.side, true
}

// ResizeTo updates the live preview. It returns true when a frame must be
// scheduled to show it.
func (m *Minimap) ResizeTo(pointerX float64, vp *viewport.State) bool {
	if m.resize == nil || vp.Gesture() != viewport.GestureResizingMinimapEdge {
		return false
	}
	p, ok := ResizePreview(m.resize.side, pointerX, vp, m.size.Width, m.opts.MinIndicatorWidth)
	if !ok {
		return false
	}
	m.resize.preview = p
	m.resize.hasPreview = true
	return m.Refresh(false)
}

// Preview returns the live resize preview.
func (m *Minimap) Preview() (Preview, bool) {
	if m.resize == nil || !m.resize.hasPreview {
		return Preview{}, false
	}
	return m.resize.preview, true
}

// EndResize commits the preview with a zoom anchored on the opposite edge.
// It reports whether a zoom was applied.
func (m *Minimap) EndResize(vp *viewport.State) bool {
	rs := m.resize
	m.resize = nil
	if vp.Gesture() == viewport.GestureResizingMinimapEdge {
		vp.End()
	}
	if rs == nil || !rs.hasPreview {
		return false
	}
	debug.Log("minimap: commit %s-edge resize, scale %.2f -> %.2f", rs.side, vp.Scale(), rs.preview.Scale)
	vp.Zoom(rs.preview.Scale, rs.preview.Anchor)
	m.Refresh(false)
	return true
}

// CancelResize drops the preview without zooming.
func (m *Minimap) CancelResize() {
	m.resize = nil
}
