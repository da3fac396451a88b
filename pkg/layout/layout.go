package layout

import "github.com/Dicklesworthstone/timeline_viewer/pkg/model"

// Options carries the presentation constants that shape a layout pass.
type Options struct {
	LaneCapacity int     // 0 means DefaultLaneCapacity
	EventInset   float64 // gap trimmed from each block's width
}

// DefaultOptions mirrors the stock configuration.
func DefaultOptions() Options {
	return Options{LaneCapacity: DefaultLaneCapacity, EventInset: 10}
}

// Position is where one event block sits.
type Position struct {
	EventID   int     `json:"event_id"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"` // after the inset
	LaneIndex int     `json:"lane"`
	StartYear int     `json:"start_year"`
	EndYear   int     `json:"end_year"`
}

// Right returns the right edge of the block.
func (p Position) Right() float64 {
	return p.Left + p.Width
}

// Result is the output of Compute.
type Result struct {
	Positions       []Position `json:"positions"`
	ContentWidth    float64    `json:"content_width"`
	ActiveLaneCount int        `json:"active_lane_count"`
	Degraded        []int      `json:"degraded,omitempty"`
	Scale           float64    `json:"scale"`
	MinYear         int        `json:"min_year"`
}

// Find returns the position computed for an event ID.
func (r Result) Find(id int) (Position, bool) {
	for _, p := range r.Positions {
		if p.EventID == id {
			return p, true
		}
	}
	return Position{}, false
}

// At returns the last-drawn position in lane covering content x.
func (r Result) At(x float64, lane int) (Position, bool) {
	for i := len(r.Positions) - 1; i >= 0; i-- {
		p := r.Positions[i]
		if p.LaneIndex == lane && x >= p.Left && x < p.Right() {
			return p, true
		}
	}
	return Position{}, false
}

// Compute lays out the visible events (in caller order) for a year range and
// scale. An unset range or non-positive scale returns an empty result; an
// empty event list still reports the content width.
func Compute(visible []model.Event, yr model.YearRange, scale float64, opts Options) Result {
	if !yr.Valid || scale <= 0 {
		return Result{Scale: scale, MinYear: yr.Min}
	}

	res := Result{
		ContentWidth: ContentWidth(yr.Min, yr.Max, scale),
		Scale:        scale,
		MinYear:      yr.Min,
		Positions:    make([]Position, 0, len(visible)),
	}
	if len(visible) == 0 {
		return res
	}

	lanes := AssignLanes(visible, opts.LaneCapacity)
	for i, e := range visible {
		res.Positions = append(res.Positions, Position{
			EventID:   e.ID,
			Left:      YearToX(float64(e.StartYear), yr.Min, scale),
			Width:     Inset(EventWidth(e.StartYear, e.EndYear, scale), opts.EventInset),
			LaneIndex: lanes.Lanes[i],
			StartYear: e.StartYear,
			EndYear:   e.EndYear,
		})
	}
	res.ActiveLaneCount = lanes.ActiveLaneCount
	res.Degraded = lanes.Degraded
	return res
}
