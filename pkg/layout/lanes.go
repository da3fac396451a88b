package layout

import "github.com/Dicklesworthstone/timeline_viewer/pkg/model"

// DefaultLaneCapacity bounds vertical growth of the timeline.
const DefaultLaneCapacity = 9

type yearSpan struct {
	start, end int
}

// Assignment is the result of one lane-assignment pass.
type Assignment struct {
	// Lanes is parallel to the input events.
	Lanes []int
	// ActiveLaneCount is the number of lanes holding at least one event.
	// First-fit placement keeps occupied lanes contiguous from 0.
	ActiveLaneCount int
	// Degraded lists the IDs of events that fit nowhere and were clamped into
	// the last lane, overlapping whatever is already there.
	Degraded []int
	// Capacity is the lane limit the pass ran with.
	Capacity int
}

// LaneOf returns the lane assigned to the event with the given ID.
func (a Assignment) LaneOf(events []model.Event, id int) (int, bool) {
	for i, e := range events {
		if e.ID == id {
			return a.Lanes[i], true
		}
	}
	return 0, false
}

// AssignLanes places events greedily, in the order given, into the lowest lane
// whose existing spans do not overlap the event's closed year range. When all
// capacity lanes conflict the event goes to the last lane anyway.
//
// The pass is recomputed from scratch every render; input order is the only
// tie-break, so the same visible set always produces the same lanes.
func AssignLanes(events []model.Event, capacity int) Assignment {
	if capacity <= 0 {
		capacity = DefaultLaneCapacity
	}

	occupancy := make([][]yearSpan, capacity)
	out := Assignment{
		Lanes:    make([]int, len(events)),
		Capacity: capacity,
	}

	for i, e := range events {
		lane := 0
		for ; lane < capacity; lane++ {
			if !spansOverlap(occupancy[lane], e.StartYear, e.EndYear) {
				break
			}
		}
		if lane == capacity {
			lane = capacity - 1
			out.Degraded = append(out.Degraded, e.ID)
		}

		occupancy[lane] = append(occupancy[lane], yearSpan{start: e.StartYear, end: e.EndYear})
		out.Lanes[i] = lane
	}

	for _, spans := range occupancy {
		if len(spans) > 0 {
			out.ActiveLaneCount++
		}
	}
	return out
}

func spansOverlap(spans []yearSpan, start, end int) bool {
	for _, s := range spans {
		if start <= s.end && s.start <= end {
			return true
		}
	}
	return false
}
