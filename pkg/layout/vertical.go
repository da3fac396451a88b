package layout

import "math"

// VerticalMetrics places lanes on the y axis. Lane 0 sits at the bottom of the
// events layer; unused lanes let the whole stack drift downward less, so the
// timeline compresses instead of leaving a gap.
type VerticalMetrics struct {
	LayerHeight float64
	EventHeight float64
	LaneSpacing float64
	MaxPushUp   float64
	PushUpScale float64
	Capacity    int
}

// DefaultVerticalMetrics mirrors the stock configuration.
func DefaultVerticalMetrics() VerticalMetrics {
	return VerticalMetrics{
		LayerHeight: 800,
		EventHeight: 30,
		LaneSpacing: 72,
		MaxPushUp:   100,
		PushUpScale: 0.3,
		Capacity:    DefaultLaneCapacity,
	}
}

// PushUpOffset is how far the stack shifts for the given number of active lanes.
func (m VerticalMetrics) PushUpOffset(activeLanes int) float64 {
	unused := m.Capacity - activeLanes
	if unused < 0 {
		unused = 0
	}
	return math.Min(float64(unused)*m.LaneSpacing, m.MaxPushUp) * m.PushUpScale
}

// Top returns the block's top edge inside the events layer.
func (m VerticalMetrics) Top(lane, activeLanes int) float64 {
	return m.LayerHeight - m.EventHeight - float64(lane)*m.LaneSpacing - m.PushUpOffset(activeLanes)
}

// ShowsLabel reports whether a block is wide enough to carry its title.
func ShowsLabel(width, minLabelWidth float64) bool {
	return width >= minLabelWidth
}
