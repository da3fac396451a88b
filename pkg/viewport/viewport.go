// Package viewport holds the pan and zoom state of the main timeline view.
//
// State is owned by a single controller and mutated only from the UI event
// loop. Every out-of-range request clamps silently: scale to
// [MinScale, MaxScale] before any anchor math, scroll to [0, MaxScroll].
package viewport

import (
	"math"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/layout"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// Options seeds a new State.
type Options struct {
	Scale         float64 // initial pixels per year
	MinScale      float64
	MaxScale      float64
	ButtonStep    float64
	ViewportWidth float64
}

// DefaultOptions mirrors the stock configuration.
func DefaultOptions() Options {
	return Options{Scale: 50, MinScale: 28, MaxScale: 200, ButtonStep: 20}
}

// State is the viewport: scale factor, scroll offset and the active gesture.
type State struct {
	scale         float64
	scroll        float64
	viewportWidth float64
	years         model.YearRange

	minScale   float64
	maxScale   float64
	buttonStep float64

	gesture         Gesture
	dragStartX      float64
	dragStartScroll float64
}

// New creates a viewport with no year range yet.
func New(opts Options) *State {
	if opts.MinScale <= 0 {
		opts.MinScale = DefaultOptions().MinScale
	}
	if opts.MaxScale < opts.MinScale {
		opts.MaxScale = opts.MinScale
	}
	s := &State{
		minScale:      opts.MinScale,
		maxScale:      opts.MaxScale,
		buttonStep:    opts.ButtonStep,
		viewportWidth: math.Max(opts.ViewportWidth, 0),
	}
	s.scale = s.ClampScale(opts.Scale)
	return s
}

// Scale is the current pixels per year.
func (s *State) Scale() float64 { return s.scale }

// Scroll is the current horizontal scroll offset in content pixels.
func (s *State) Scroll() float64 { return s.scroll }

func (s *State) ViewportWidth() float64 { return s.viewportWidth }

func (s *State) Years() model.YearRange { return s.years }

// Limits returns the minimum and maximum scale.
func (s *State) Limits() (float64, float64) { return s.minScale, s.maxScale }

// SetYears replaces the year range and re-clamps the scroll offset.
func (s *State) SetYears(yr model.YearRange) {
	s.years = yr
	s.scroll = s.clampScroll(s.scroll)
}

// SetViewportWidth records a resize of the main view.
func (s *State) SetViewportWidth(w float64) {
	s.viewportWidth = math.Max(w, 0)
	s.scroll = s.clampScroll(s.scroll)
}

// ContentWidth is the full scrollable width at the current scale, or 0 when
// no year range is set.
func (s *State) ContentWidth() float64 {
	return s.contentWidthAt(s.scale)
}

func (s *State) contentWidthAt(scale float64) float64 {
	if !s.years.Valid {
		return 0
	}
	return layout.ContentWidth(s.years.Min, s.years.Max, scale)
}

// MaxScroll is the largest valid scroll offset.
func (s *State) MaxScroll() float64 {
	return math.Max(0, s.ContentWidth()-s.viewportWidth)
}

// ClampScale bounds a requested scale to the configured limits.
func (s *State) ClampScale(scale float64) float64 {
	if math.IsNaN(scale) {
		return s.minScale
	}
	return math.Max(s.minScale, math.Min(scale, s.maxScale))
}

func (s *State) clampScroll(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(x, s.MaxScroll()))
}

// Pan assigns the scroll offset directly, clamped, and returns the value
// actually applied.
func (s *State) Pan(offset float64) float64 {
	s.scroll = s.clampScroll(offset)
	return s.scroll
}

// PanBy scrolls relative to the current offset.
func (s *State) PanBy(dx float64) float64 {
	return s.Pan(s.scroll + dx)
}

// ScrollToEnd shows the latest years, as on first render.
func (s *State) ScrollToEnd() {
	s.scroll = s.MaxScroll()
}

// CenterOn pans so year sits at the horizontal center of the viewport.
func (s *State) CenterOn(year float64) float64 {
	if !s.years.Valid {
		return s.scroll
	}
	return s.Pan(layout.YearToX(year, s.years.Min, s.scale) - s.viewportWidth/2)
}

// CenterYear is the (fractional) year at the viewport's horizontal center.
func (s *State) CenterYear() float64 {
	return s.YearAt(s.viewportWidth / 2)
}

// YearAt converts a viewport-relative x into a year.
func (s *State) YearAt(viewportX float64) float64 {
	return layout.XToYear(s.scroll+viewportX, s.years.Min, s.scale)
}

// EdgeFraction returns the position of a viewport edge as a fraction of
// the content width. It is 0 when there is no content.
func (s *State) EdgeFraction(edge Edge) float64 {
	cw := s.ContentWidth()
	if cw <= 0 {
		return 0
	}
	if edge == EdgeRight {
		return (s.scroll + s.viewportWidth) / cw
	}
	return s.scroll / cw
}

// Snapshot is a read-only copy of the viewport geometry.
type Snapshot struct {
	Scale         float64 `json:"scale"`
	Scroll        float64 `json:"scroll"`
	ViewportWidth float64 `json:"viewport_width"`
	ContentWidth  float64 `json:"content_width"`
}

// Snapshot captures the current geometry.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Scale:         s.scale,
		Scroll:        s.scroll,
		ViewportWidth: s.viewportWidth,
		ContentWidth:  s.ContentWidth(),
	}
}
