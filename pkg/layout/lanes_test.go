package layout

import (
	"testing"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

func ev(id, start, end int) model.Event {
	return model.Event{ID: id, StartYear: start, EndYear: end, Title: "e"}
}

func TestAssignLanes_ExampleSequence(t *testing.T) {
	events := []model.Event{ev(0, 1900, 1910), ev(1, 1905, 1920), ev(2, 1920, 1925)}

	a := AssignLanes(events, 9)

	if a.Lanes[0] == a.Lanes[1] {
		t.Errorf("overlapping events share lane %d", a.Lanes[0])
	}
	if a.Lanes[0] != 0 || a.Lanes[1] != 1 {
		t.Errorf("Lanes = %v, want first two in 0 and 1", a.Lanes)
	}
	// 1920-1925 touches event 1 (ends 1920) but not event 0
	if a.Lanes[2] != 0 {
		t.Errorf("third event lane = %d, want 0", a.Lanes[2])
	}
	if a.ActiveLaneCount != 2 {
		t.Errorf("ActiveLaneCount = %d, want 2", a.ActiveLaneCount)
	}
	if len(a.Degraded) != 0 {
		t.Errorf("Degraded = %v, want none", a.Degraded)
	}
}

func TestAssignLanes_NoOverlapWithinLane(t *testing.T) {
	var events []model.Event
	// Deterministic pseudo-random spans.
	seed := 7
	for i := 0; i < 150; i++ {
		seed = (seed*1103515245 + 12345) % 2147483648
		start := 1800 + seed%200
		length := (seed / 200) % 25
		events = append(events, ev(i, start, start+length))
	}

	a := AssignLanes(events, 40)
	if len(a.Degraded) != 0 {
		t.Fatalf("unexpected degraded packing with capacity 40: %d events", len(a.Degraded))
	}
	for i := range events {
		for j := i + 1; j < len(events); j++ {
			if a.Lanes[i] == a.Lanes[j] && events[i].Overlaps(events[j]) {
				t.Fatalf("events %d and %d overlap in lane %d", i, j, a.Lanes[i])
			}
		}
	}
}

func TestAssignLanes_CapacityExhausted(t *testing.T) {
	const capacity = 9
	var events []model.Event
	for i := 0; i <= capacity; i++ {
		events = append(events, ev(i, 1950, 1950))
	}

	a := AssignLanes(events, capacity)

	for i := 0; i < capacity; i++ {
		if a.Lanes[i] != i {
			t.Errorf("event %d lane = %d, want %d", i, a.Lanes[i], i)
		}
	}
	if a.Lanes[capacity] != capacity-1 {
		t.Errorf("overflow event lane = %d, want %d", a.Lanes[capacity], capacity-1)
	}
	if a.Lanes[capacity] != a.Lanes[capacity-1] {
		t.Error("overflow event should share the last lane with another event")
	}
	if len(a.Degraded) != 1 || a.Degraded[0] != capacity {
		t.Errorf("Degraded = %v, want [%d]", a.Degraded, capacity)
	}
	if a.ActiveLaneCount != capacity {
		t.Errorf("ActiveLaneCount = %d, want %d", a.ActiveLaneCount, capacity)
	}
}

func TestAssignLanes_OrderIsTieBreak(t *testing.T) {
	a := ev(0, 1900, 1950)
	b := ev(1, 1920, 1930)

	forward := AssignLanes([]model.Event{a, b}, 9)
	reverse := AssignLanes([]model.Event{b, a}, 9)

	if lane, _ := forward.LaneOf([]model.Event{a, b}, 0); lane != 0 {
		t.Errorf("forward: long event lane = %d, want 0", lane)
	}
	if lane, _ := reverse.LaneOf([]model.Event{b, a}, 0); lane != 1 {
		t.Errorf("reverse: long event lane = %d, want 1", lane)
	}
}

func TestAssignLanes_Deterministic(t *testing.T) {
	events := []model.Event{ev(0, 1, 5), ev(1, 3, 9), ev(2, 4, 4), ev(3, 6, 10), ev(4, 2, 2)}
	first := AssignLanes(events, 3)
	for i := 0; i < 5; i++ {
		again := AssignLanes(events, 3)
		for j := range first.Lanes {
			if first.Lanes[j] != again.Lanes[j] {
				t.Fatalf("run %d: lane[%d] = %d, want %d", i, j, again.Lanes[j], first.Lanes[j])
			}
		}
	}
}

func TestAssignLanes_DefaultCapacity(t *testing.T) {
	a := AssignLanes([]model.Event{ev(0, 1, 1)}, 0)
	if a.Capacity != DefaultLaneCapacity {
		t.Errorf("Capacity = %d, want %d", a.Capacity, DefaultLaneCapacity)
	}
	empty := AssignLanes(nil, 9)
	if empty.ActiveLaneCount != 0 || len(empty.Lanes) != 0 {
		t.Errorf("empty assignment = %+v", empty)
	}
}
