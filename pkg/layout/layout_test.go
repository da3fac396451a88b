package layout

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

func TestComputeEmptyEvents(t *testing.T) {
	yr := model.NewYearRange(1900, 1999)
	res := Compute(nil, yr, 50, DefaultOptions())

	if res.ContentWidth != 100*50 {
		t.Errorf("ContentWidth = %g, want %d", res.ContentWidth, 100*50)
	}
	if len(res.Positions) != 0 {
		t.Errorf("Positions = %v, want empty", res.Positions)
	}
	if res.ActiveLaneCount != 0 {
		t.Errorf("ActiveLaneCount = %d, want 0", res.ActiveLaneCount)
	}
}

func TestComputeDegenerateInputs(t *testing.T) {
	events := []model.Event{ev(0, 1900, 1910)}
	tests := []struct {
		name  string
		yr    model.YearRange
		scale float64
	}{
		{"unset range", model.YearRange{}, 50},
		{"zero scale", model.NewYearRange(1900, 1910), 0},
		{"negative scale", model.NewYearRange(1900, 1910), -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(events, tt.yr, tt.scale, DefaultOptions())
			if res.ContentWidth != 0 || len(res.Positions) != 0 {
				t.Errorf("Compute = %+v, want empty", res)
			}
		})
	}
}

func TestComputePositions(t *testing.T) {
	events := []model.Event{ev(10, 1900, 1910), ev(11, 1905, 1920), ev(12, 1920, 1925)}
	yr := model.NewYearRange(1900, 1925)

	res := Compute(events, yr, 20, Options{LaneCapacity: 9, EventInset: 10})

	if len(res.Positions) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(res.Positions))
	}
	want := []Position{
		{EventID: 10, Left: 0, Width: 11*20 - 10, LaneIndex: 0, StartYear: 1900, EndYear: 1910},
		{EventID: 11, Left: 5 * 20, Width: 16*20 - 10, LaneIndex: 1, StartYear: 1905, EndYear: 1920},
		{EventID: 12, Left: 20 * 20, Width: 6*20 - 10, LaneIndex: 0, StartYear: 1920, EndYear: 1925},
	}
	for i, w := range want {
		got := res.Positions[i]
		if got.EventID != w.EventID || got.LaneIndex != w.LaneIndex ||
			!scalar.EqualWithinAbs(got.Left, w.Left, 1e-9) || !scalar.EqualWithinAbs(got.Width, w.Width, 1e-9) {
			t.Errorf("Positions[%d] = %+v, want %+v", i, got, w)
		}
	}
	if res.ActiveLaneCount != 2 {
		t.Errorf("ActiveLaneCount = %d, want 2", res.ActiveLaneCount)
	}
	if p, ok := res.Find(12); !ok || p.LaneIndex != 0 {
		t.Errorf("Find(12) = %+v, %v", p, ok)
	}
	if p, ok := res.At(5*20+1, 1); !ok || p.EventID != 11 {
		t.Errorf("At(101, 1) = %+v, %v", p, ok)
	}
	if _, ok := res.At(5*20+1, 3); ok {
		t.Error("At on an empty lane should miss")
	}
}

func TestResultAtPrefersLastDrawn(t *testing.T) {
	// Degraded events share the last lane and may overlap; the later one is
	// drawn on top.
	res := Result{Positions: []Position{
		{EventID: 4, Left: 0, Width: 100, LaneIndex: 8},
		{EventID: 7, Left: 50, Width: 100, LaneIndex: 8},
		{EventID: 9, Left: 0, Width: 200, LaneIndex: 0},
	}}
	tests := []struct {
		x      float64
		lane   int
		wantID int
		wantOK bool
	}{
		{25, 8, 4, true},
		{75, 8, 7, true},
		{75, 0, 9, true},
		{160, 8, 0, false},
	}
	for _, tt := range tests {
		p, ok := res.At(tt.x, tt.lane)
		if ok != tt.wantOK || (ok && p.EventID != tt.wantID) {
			t.Errorf("At(%g, %d) = %d, %v; want %d, %v", tt.x, tt.lane, p.EventID, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestComputeVisibilityRoundTripIsStable(t *testing.T) {
	all := []model.Event{ev(0, 1900, 1950), ev(1, 1910, 1920), ev(2, 1915, 1940), ev(3, 1945, 1960)}
	yr := model.NewYearRange(1900, 1960)

	before := Compute(all, yr, 30, DefaultOptions())
	// Hide event 1, then show it again: the full relayout must match exactly.
	_ = Compute([]model.Event{all[0], all[2], all[3]}, yr, 30, DefaultOptions())
	after := Compute(all, yr, 30, DefaultOptions())

	for i := range before.Positions {
		if before.Positions[i] != after.Positions[i] {
			t.Errorf("position %d changed: %+v -> %+v", i, before.Positions[i], after.Positions[i])
		}
	}
}
