package timeline

import (
	"time"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/frame"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/viewport"
)

// Zoom rescales around an anchor and re-renders. The render pass runs in
// the zooming state, so removals are immediate and nothing fades.
func (t *Timeline) Zoom(scale float64, anchor viewport.Anchor) {
	t.vp.Zoom(scale, anchor)
	t.settleZoom()
}

// ZoomIn steps the scale up around the center year.
func (t *Timeline) ZoomIn() {
	t.vp.ZoomIn()
	t.settleZoom()
}

// ZoomOut steps the scale down around the center year.
func (t *Timeline) ZoomOut() {
	t.vp.ZoomOut()
	t.settleZoom()
}

// Wheel feeds one ctrl+wheel event at viewport x. The zoom itself happens
// on the next Frame.
func (t *Timeline) Wheel(now time.Time, deltaY, viewportX float64) {
	t.wheel.Add(now, deltaY, t.vp.YearAt(viewportX), t.vp)
	t.request(frame.Zoom)
}

// WheelIdle ends the wheel gesture if it has been quiet long enough.
func (t *Timeline) WheelIdle(now time.Time) bool {
	return t.wheel.ResetIfQuiet(now, t.vp)
}

// Pan sets the scroll offset.
func (t *Timeline) Pan(offset float64) {
	t.vp.Pan(offset)
	t.refreshMinimap(false)
}

// PanBy scrolls relative to the current offset.
func (t *Timeline) PanBy(dx float64) {
	t.Pan(t.vp.Scroll() + dx)
}

// CenterOn pans so year is centered, as when jumping to a search hit.
func (t *Timeline) CenterOn(year float64) {
	t.vp.CenterOn(year)
	t.refreshMinimap(false)
}

// BeginPan starts a drag-to-pan. It is refused while a zoom is settling.
func (t *Timeline) BeginPan(pointerX float64) bool {
	if t.vp.Zooming() {
		return false
	}
	t.vp.BeginPan(pointerX)
	return true
}

// DragPan continues a drag-to-pan.
func (t *Timeline) DragPan(pointerX float64) {
	if t.vp.DragPan(pointerX) {
		t.refreshMinimap(false)
	}
}

// BeginMinimapDrag starts click-and-drag navigation on the minimap.
func (t *Timeline) BeginMinimapDrag(x float64) {
	if t.mm.BeginDrag(x, t.vp) {
		t.newFrame = true
	}
}

// DragMinimap continues minimap navigation.
func (t *Timeline) DragMinimap(x float64) {
	if t.mm.Drag(x, t.vp) {
		t.newFrame = true
	}
}

// BeginMinimapResize starts dragging an indicator edge.
func (t *Timeline) BeginMinimapResize(edge viewport.Edge, x float64) {
	if t.mm.BeginResize(edge, x, t.vp) {
		t.newFrame = true
	}
}

// ResizeMinimap updates the live resize preview.
func (t *Timeline) ResizeMinimap(x float64) {
	if t.mm.ResizeTo(x, t.vp) {
		t.newFrame = true
	}
}

// PointerUp ends whatever pointer gesture is active. A minimap edge resize
// commits its zoom here.
func (t *Timeline) PointerUp() viewport.Gesture {
	g := t.vp.Gesture()
	if g == viewport.GestureResizingMinimapEdge {
		if t.mm.EndResize(t.vp) {
			t.settleZoom()
		}
		return g
	}
	t.vp.End()
	t.refreshMinimap(false)
	return g
}

// SetViewportWidth records a resize of the main view.
func (t *Timeline) SetViewportWidth(w float64) {
	t.vp.SetViewportWidth(w)
	t.refreshMinimap(true)
}

// SetMinimapWidth resizes the minimap, keeping its height.
func (t *Timeline) SetMinimapWidth(w float64) {
	size := t.mm.Size()
	size.Width = w
	if t.mm.Resize(size) {
		t.newFrame = true
	}
}

// ToggleCategory applies a category click and re-renders.
func (t *Timeline) ToggleCategory(category string) bool {
	if !t.vis.Toggle(category) {
		return false
	}
	t.Render()
	return true
}

// SetCategoryHidden hides or shows one category and re-renders.
func (t *Timeline) SetCategoryHidden(category string, hidden bool) bool {
	if !t.vis.SetHidden(category, hidden) {
		return false
	}
	t.Render()
	return true
}

// ShowAllCategories clears every hidden category.
func (t *Timeline) ShowAllCategories() {
	t.vis.ShowAll()
	t.Render()
}

// ApplyQuery restores hidden categories from a query string and re-renders.
func (t *Timeline) ApplyQuery(rawQuery string) error {
	if err := t.vis.ApplyQuery(rawQuery); err != nil {
		return err
	}
	t.Render()
	return nil
}

// FadeOutComplete finishes a fade-out started by a render pass.
func (t *Timeline) FadeOutComplete(id, gen int) bool {
	return t.rec.FadeOutComplete(id, gen)
}

// EventAt returns an event by ID.
func (t *Timeline) EventAt(id int) (model.Event, bool) {
	if id < 0 || id >= len(t.events) || t.events[id].ID != id {
		for _, e := range t.events {
			if e.ID == id {
				return e, true
			}
		}
		return model.Event{}, false
	}
	return t.events[id], true
}

// Prev returns the event before id in data order.
func (t *Timeline) Prev(id int) (model.Event, bool) {
	i := t.index(id)
	if i <= 0 {
		return model.Event{}, false
	}
	return t.events[i-1], true
}

// Next returns the event after id in data order.
func (t *Timeline) Next(id int) (model.Event, bool) {
	i := t.index(id)
	if i < 0 || i+1 >= len(t.events) {
		return model.Event{}, false
	}
	return t.events[i+1], true
}

func (t *Timeline) index(id int) int {
	for i, e := range t.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
