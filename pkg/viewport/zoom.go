package viewport

// AnchorKind selects how a zoom keeps its focal point.
type AnchorKind int

const (
	// AnchorViewCenter keeps whatever year is currently centered.
	AnchorViewCenter AnchorKind = iota
	// AnchorCenter keeps a given year at the viewport center.
	AnchorCenter
	// AnchorEdgeFraction keeps one viewport edge at a fixed fraction of the
	// content width.
	AnchorEdgeFraction
)

// Edge names a side of the viewport or minimap indicator.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
)

func (e Edge) String() string {
	if e == EdgeRight {
		return "right"
	}
	return "left"
}

// Opposite returns the other edge.
func (e Edge) Opposite() Edge {
	if e == EdgeRight {
		return EdgeLeft
	}
	return EdgeRight
}

// Anchor is the focal point preserved across a zoom.
type Anchor struct {
	Kind     AnchorKind
	Year     float64 // AnchorCenter
	Edge     Edge    // AnchorEdgeFraction
	Fraction float64 // AnchorEdgeFraction
}

// CenterAnchor keeps year at the viewport center.
func CenterAnchor(year float64) Anchor {
	return Anchor{Kind: AnchorCenter, Year: year}
}

// EdgeAnchor keeps the given edge at fraction of the content width.
func EdgeAnchor(edge Edge, fraction float64) Anchor {
	return Anchor{Kind: AnchorEdgeFraction, Edge: edge, Fraction: fraction}
}

// Zoom rescales the view and re-positions the scroll offset so the anchor
// stays put. The scale is clamped first; the resulting offset is clamped to
// the valid scroll range. It returns the applied scale and enters the
// zooming gesture until Settle is called.
func (s *State) Zoom(newScale float64, anchor Anchor) float64 {
	if anchor.Kind == AnchorViewCenter {
		anchor = CenterAnchor(s.CenterYear())
	}

	scale := s.ClampScale(newScale)
	s.gesture = GestureZooming

	if !s.years.Valid {
		s.scale = scale
		s.scroll = 0
		return scale
	}

	var target float64
	switch anchor.Kind {
	case AnchorEdgeFraction:
		cw := s.contentWidthAt(scale)
		target = anchor.Fraction * cw
		if anchor.Edge == EdgeRight {
			target -= s.viewportWidth
		}
	default:
		target = (anchor.Year-float64(s.years.Min))*scale - s.viewportWidth/2
	}

	s.scale = scale
	s.scroll = s.clampScroll(target)
	return scale
}

// ZoomIn steps the scale up by the button increment around the center year.
func (s *State) ZoomIn() float64 {
	return s.Zoom(s.scale+s.buttonStep, Anchor{})
}

// ZoomOut steps the scale down by the button increment around the center year.
func (s *State) ZoomOut() float64 {
	return s.Zoom(s.scale-s.buttonStep, Anchor{})
}

// CanZoomIn reports whether the scale is below its maximum.
func (s *State) CanZoomIn() bool {
	return s.scale < s.maxScale
}

// CanZoomOut reports whether the scale is above its minimum.
func (s *State) CanZoomOut() bool {
	return s.scale > s.minScale
}
