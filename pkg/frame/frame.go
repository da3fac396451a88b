// Package frame coalesces redraw requests into at most one unit of work per
// animation frame.
//
// It is a dirty flag plus a single pending frame request, not a queue: any
// number of Request calls between two frames collapse into one Flush.
package frame

// Work is a bit set of what the next frame has to do.
type Work uint8

const (
	// Indicator repositions the minimap viewport indicator. Cheap.
	Indicator Work = 1 << iota
	// Redraw recomputes the minimap bars from the current layout.
	Redraw
	// Zoom applies a pending wheel zoom.
	Zoom
)

// Has reports whether w includes all bits of o.
func (w Work) Has(o Work) bool {
	return w&o == o && o != 0
}

// Scheduler tracks pending work and whether a frame callback is outstanding.
// It is not safe for concurrent use; it lives on the UI event loop.
type Scheduler struct {
	work    Work
	pending bool
	frames  int
}

// Request marks work as due. It returns true only when the caller must
// schedule a frame callback, i.e. none is outstanding yet.
func (s *Scheduler) Request(w Work) bool {
	s.work |= w
	if s.pending {
		return false
	}
	s.pending = true
	return true
}

// Pending reports whether a frame callback is outstanding.
func (s *Scheduler) Pending() bool {
	return s.pending
}

// Due returns the accumulated work without clearing it.
func (s *Scheduler) Due() Work {
	return s.work
}

// Flush is called from the frame callback. It clears the pending request and
// returns everything that was requested since the previous frame.
func (s *Scheduler) Flush() Work {
	w := s.work
	s.work = 0
	s.pending = false
	s.frames++
	return w
}

// Frames counts flushed frames.
func (s *Scheduler) Frames() int {
	return s.frames
}
