package viewport

// Gesture is the pointer interaction currently in progress.
type Gesture int

const (
	GestureIdle Gesture = iota
	// GestureZooming spans one render pass after a zoom is applied.
	GestureZooming
	GestureDraggingPan
	GestureDraggingMinimap
	GestureResizingMinimapEdge
)

func (g Gesture) String() string {
	switch g {
	case GestureZooming:
		return "zooming"
	case GestureDraggingPan:
		return "dragging-pan"
	case GestureDraggingMinimap:
		return "dragging-minimap"
	case GestureResizingMinimapEdge:
		return "resizing-minimap-edge"
	default:
		return "idle"
	}
}

// Gesture returns the active gesture.
func (s *State) Gesture() Gesture {
	return s.gesture
}

// Zooming reports whether a zoom is waiting for its render pass to settle.
// Reconciliation skips fade transitions while this is true.
func (s *State) Zooming() bool {
	return s.gesture == GestureZooming
}

// Settle ends the zooming state once the render pass that applied the new
// scale has completed. Other gestures are left alone.
func (s *State) Settle() {
	if s.gesture == GestureZooming {
		s.gesture = GestureIdle
	}
}

// Begin starts a gesture, abandoning any gesture of a different kind.
func (s *State) Begin(g Gesture) {
	s.gesture = g
}

// BeginPan starts a drag-to-pan at pointer x.
func (s *State) BeginPan(pointerX float64) {
	s.gesture = GestureDraggingPan
	s.dragStartX = pointerX
	s.dragStartScroll = s.scroll
}

// DragPan moves the content 1:1 with the pointer. It is a no-op unless a pan
// drag is in progress.
func (s *State) DragPan(pointerX float64) bool {
	if s.gesture != GestureDraggingPan {
		return false
	}
	s.Pan(s.dragStartScroll - (pointerX - s.dragStartX))
	return true
}

// End returns to idle on pointer-up, wherever the pointer is. The zooming
// state is not a pointer gesture and is left for Settle.
func (s *State) End() Gesture {
	g := s.gesture
	if g != GestureZooming {
		s.gesture = GestureIdle
	}
	return g
}
