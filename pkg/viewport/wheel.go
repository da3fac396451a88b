package viewport

import (
	"math"
	"time"
)

// WheelZoom treats a burst of ctrl+wheel events as one zoom gesture with a
// single stable anchor year. Events accumulate into a pending scale; the
// caller applies it at most once per frame via Apply. After a quiet period
// without wheel input the accumulator and anchor reset.
type WheelZoom struct {
	Sensitivity float64       // factor per unit of |deltaY|
	MaxStep     float64       // cap on one event's factor increment
	Quiet       time.Duration // silence that ends the gesture

	pending    float64
	anchorYear float64
	active     bool
	dirty      bool
	last       time.Time
}

// NewWheelZoom returns an accumulator with the given tuning.
func NewWheelZoom(sensitivity, maxStep float64, quiet time.Duration) *WheelZoom {
	return &WheelZoom{Sensitivity: sensitivity, MaxStep: maxStep, Quiet: quiet}
}

// Add records one wheel event at now. cursorYear is the year under the
// pointer; it becomes the anchor only for the first event of a gesture.
// Negative deltaY zooms in. It returns true when a zoom is due at the next
// frame.
func (w *WheelZoom) Add(now time.Time, deltaY, cursorYear float64, s *State) bool {
	w.ResetIfQuiet(now, s)
	if !w.active {
		w.active = true
		w.anchorYear = cursorYear
		w.pending = s.Scale()
	}
	w.last = now

	factor := 1 + math.Min(math.Abs(deltaY)*w.Sensitivity, w.MaxStep)
	if deltaY < 0 {
		w.pending *= factor
	} else {
		w.pending /= factor
	}
	w.pending = s.ClampScale(w.pending)
	w.dirty = true
	return true
}

// Pending returns the accumulated scale and whether it still has to be applied.
func (w *WheelZoom) Pending() (float64, bool) {
	return w.pending, w.dirty
}

// AnchorYear is the gesture's anchor, valid while Active.
func (w *WheelZoom) AnchorYear() float64 {
	return w.anchorYear
}

// Active reports whether a gesture is in progress.
func (w *WheelZoom) Active() bool {
	return w.active
}

// Apply performs the pending zoom, if any, anchored on the gesture year.
// Call it from the frame callback.
func (w *WheelZoom) Apply(s *State) bool {
	if !w.dirty {
		return false
	}
	w.dirty = false
	s.Zoom(w.pending, CenterAnchor(w.anchorYear))
	return true
}

// ResetIfQuiet ends the gesture when no wheel event arrived within Quiet of
// now. The pending scale falls back to the viewport's current scale.
func (w *WheelZoom) ResetIfQuiet(now time.Time, s *State) bool {
	if !w.active || now.Sub(w.last) < w.Quiet {
		return false
	}
	w.Reset(s)
	return true
}

// Reset drops the anchor and pending scale.
func (w *WheelZoom) Reset(s *State) {
	w.active = false
	w.dirty = false
	w.anchorYear = 0
	if s != nil {
		w.pending = s.Scale()
	}
}
