package timeline

import (
	"reflect"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/config"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/layout"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/loader"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/reconcile"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/viewport"
)

func loadSample(t *testing.T) []model.Event {
	t.Helper()
	events, err := loader.LoadEvents("../../tests/testdata/events.json")
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	return events
}

func startedTimeline(t *testing.T) *Timeline {
	t.Helper()
	tl := New(loadSample(t), config.Default())
	tl.Start(800)
	tl.MarkInitialRenderDone()
	tl.Frame()
	tl.TakeFrameRequest()
	return tl
}

func laneOf(t *testing.T, res layout.Result, id int) int {
	t.Helper()
	p, ok := res.Find(id)
	if !ok {
		t.Fatalf("event %d not laid out", id)
	}
	return p.LaneIndex
}

func TestStart(t *testing.T) {
	tl := New(loadSample(t), config.Default())
	d := tl.Start(800)

	if !reflect.DeepEqual(d.Created, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("Created = %v", d.Created)
	}
	if yr := tl.Years(); yr.Min != 1865 || yr.Max != 1970 {
		t.Errorf("Years() = %+v", yr)
	}
	vp := tl.Viewport()
	if vp.ContentWidth() != 106*50 {
		t.Errorf("ContentWidth() = %g, want %d", vp.ContentWidth(), 106*50)
	}
	if vp.Scroll() != vp.MaxScroll() {
		t.Errorf("initial Scroll() = %g, want the end %g", vp.Scroll(), vp.MaxScroll())
	}
	if !tl.TakeFrameRequest() {
		t.Fatal("Start should request a frame for the minimap")
	}
	if tl.TakeFrameRequest() {
		t.Error("TakeFrameRequest should report only once")
	}

	tl.Frame()
	if n := len(tl.Minimap().Bars()); n != 6 {
		t.Errorf("minimap bars = %d, want 6", n)
	}
	want := 4500 * 1200 / 5300.0
	if got := tl.Minimap().Indicator().Left; !scalar.EqualWithinAbs(got, want, 1e-9) {
		t.Errorf("indicator Left = %g, want %g", got, want)
	}
}

func TestLanesForSample(t *testing.T) {
	tl := startedTimeline(t)
	res := tl.Layout()

	want := map[int]int{0: 0, 1: 0, 2: 0, 3: 1, 4: 2, 5: 0}
	for id, lane := range want {
		if got := laneOf(t, res, id); got != lane {
			t.Errorf("event %d lane = %d, want %d", id, got, lane)
		}
	}
	if res.ActiveLaneCount != 3 {
		t.Errorf("ActiveLaneCount = %d, want 3", res.ActiveLaneCount)
	}
}

func TestToggleCategoryRoundTrip(t *testing.T) {
	tl := startedTimeline(t)
	before := tl.Layout()

	if !tl.ToggleCategory("Law") {
		t.Fatal("ToggleCategory(Law) returned false")
	}
	d := tl.LastDiff()
	if !reflect.DeepEqual(d.FadingOut, []reconcile.Fade{{ID: 2, Gen: 1}, {ID: 4, Gen: 1}}) {
		t.Errorf("FadingOut = %v, want [2 4]", d.FadingOut)
	}
	if got := tl.Visibility().HideValue(); got != "Education,Politics,Society" {
		t.Errorf("HideValue() = %q", got)
	}

	tl.ToggleCategory("Law")
	d = tl.LastDiff()
	if !reflect.DeepEqual(d.Restored, []int{2, 4}) {
		t.Errorf("Restored = %v, want [2 4]", d.Restored)
	}
	if len(d.Created) != 0 {
		t.Errorf("round trip created elements %v", d.Created)
	}
	if !reflect.DeepEqual(before.Positions, tl.Layout().Positions) {
		t.Errorf("positions changed after a hide/show round trip:\n%v\n%v", before.Positions, tl.Layout().Positions)
	}
	if tl.ToggleCategory("Nope") {
		t.Error("unknown category should not toggle")
	}
}

func TestApplyQuery(t *testing.T) {
	tl := startedTimeline(t)
	if err := tl.ApplyQuery("hide=Society"); err != nil {
		t.Fatalf("ApplyQuery: %v", err)
	}
	if _, ok := tl.Layout().Find(2); ok {
		t.Error("Society-only event should be hidden")
	}
	if _, ok := tl.Layout().Find(4); !ok {
		t.Error("event with a visible Politics category should stay")
	}
}

func TestZoomKeepsCenterYear(t *testing.T) {
	tl := startedTimeline(t)
	tl.CenterOn(1920)

	tl.Zoom(120, viewport.CenterAnchor(1920))

	vp := tl.Viewport()
	if !scalar.EqualWithinAbs(vp.CenterYear(), 1920, 1.0/120) {
		t.Errorf("CenterYear() = %g, want 1920", vp.CenterYear())
	}
	if vp.Zooming() {
		t.Error("zoom should settle once its render pass completes")
	}
	if tl.Layout().Scale != 120 {
		t.Errorf("layout scale = %g, want 120", tl.Layout().Scale)
	}
}

func TestZoomRemovesFadingImmediately(t *testing.T) {
	tl := startedTimeline(t)
	tl.ToggleCategory("Law") // 2 and 4 start fading
	tl.ZoomIn()

	if !reflect.DeepEqual(tl.LastDiff().Removed, []int{2, 4}) {
		t.Errorf("Removed = %v, want [2 4]", tl.LastDiff().Removed)
	}
	if tl.Viewport().Scale() != 70 {
		t.Errorf("Scale() = %g, want 70", tl.Viewport().Scale())
	}
}

func TestWheelZoomAppliesOnFrame(t *testing.T) {
	tl := startedTimeline(t)
	now := time.Unix(100, 0)
	renders := tl.Renders()

	tl.Wheel(now, -100, 400)
	tl.Wheel(now.Add(5*time.Millisecond), -100, 100)
	if !tl.TakeFrameRequest() {
		t.Fatal("wheel should request a frame")
	}
	if tl.Renders() != renders {
		t.Error("wheel events must not render before the frame")
	}

	tl.Frame()
	if tl.Renders() != renders+1 {
		t.Errorf("Renders() = %d, want %d (one zoom per frame)", tl.Renders(), renders+1)
	}
	if !scalar.EqualWithinAbs(tl.Viewport().Scale(), 50*1.25*1.25, 1e-9) {
		t.Errorf("Scale() = %g", tl.Viewport().Scale())
	}
	if tl.TakeFrameRequest() {
		t.Error("minimap work from the zoom should be folded into the same frame")
	}

	if tl.WheelIdle(now.Add(50 * time.Millisecond)) {
		t.Error("wheel gesture reset too early")
	}
	if !tl.WheelIdle(now.Add(time.Second)) {
		t.Error("wheel gesture should reset after the quiet period")
	}
}

func TestDragPan(t *testing.T) {
	tl := startedTimeline(t)
	start := tl.Viewport().Scroll()

	tl.BeginPan(500)
	tl.DragPan(600)
	if got := tl.Viewport().Scroll(); got != start-100 {
		t.Errorf("Scroll() = %g, want %g", got, start-100)
	}
	if g := tl.PointerUp(); g != viewport.GestureDraggingPan {
		t.Errorf("PointerUp() = %v", g)
	}
}

func TestMinimapResizeCommitsOnPointerUp(t *testing.T) {
	tl := startedTimeline(t)
	tl.Pan(1000)
	tl.Frame()
	ind := tl.Minimap().Indicator()

	tl.BeginMinimapResize(viewport.EdgeRight, ind.Right())
	tl.ResizeMinimap(ind.Right() + 60)
	if tl.Viewport().Scale() != 50 {
		t.Fatal("resize preview changed the real scale")
	}
	preview, ok := tl.Minimap().Preview()
	if !ok {
		t.Fatal("no preview")
	}

	tl.PointerUp()
	if !scalar.EqualWithinAbs(tl.Viewport().Scale(), preview.Scale, 1e-9) {
		t.Errorf("Scale() = %g, want %g", tl.Viewport().Scale(), preview.Scale)
	}
	if tl.Viewport().Gesture() != viewport.GestureIdle {
		t.Errorf("Gesture() = %v, want idle", tl.Viewport().Gesture())
	}
	if tl.Layout().Scale != preview.Scale {
		t.Error("commit should re-render at the new scale")
	}
}

func TestPrevNext(t *testing.T) {
	tl := startedTimeline(t)
	if _, ok := tl.Prev(0); ok {
		t.Error("Prev(0) should not exist")
	}
	if e, ok := tl.Next(0); !ok || e.ID != 1 {
		t.Errorf("Next(0) = %v, %v", e.ID, ok)
	}
	if _, ok := tl.Next(5); ok {
		t.Error("Next(last) should not exist")
	}
	if e, ok := tl.EventAt(3); !ok || e.Title != "Brown v. Board of Education" {
		t.Errorf("EventAt(3) = %q, %v", e.Title, ok)
	}
	if _, ok := tl.EventAt(99); ok {
		t.Error("EventAt(99) should miss")
	}
}

func TestReloadKeepsHiddenCategories(t *testing.T) {
	tl := startedTimeline(t)
	tl.SetCategoryHidden("Society", true)
	tl.Zoom(80, viewport.Anchor{})

	events := loadSample(t)[:3]
	d := tl.Reload(events)

	if len(d.Created) != 2 {
		t.Errorf("Created = %v, want the two visible events", d.Created)
	}
	if !tl.Visibility().Hidden("Society") {
		t.Error("Society should stay hidden across reload")
	}
	if tl.Viewport().Scale() != 80 {
		t.Errorf("Scale() = %g, want 80 kept", tl.Viewport().Scale())
	}
	if yr := tl.Years(); yr.Min != 1865 || yr.Max != 1970 {
		t.Errorf("Years() = %+v", yr)
	}
}

func TestSnapshot(t *testing.T) {
	tl := startedTimeline(t)
	s := tl.Snapshot()

	if len(s.Blocks) != 6 || len(s.Minimap.Bars) != 6 {
		t.Fatalf("blocks=%d bars=%d", len(s.Blocks), len(s.Minimap.Bars))
	}
	var names []string
	for _, c := range s.Categories {
		names = append(names, c.Name)
	}
	if !reflect.DeepEqual(names, []string{"Education", "Law", "Politics", "Society"}) {
		t.Errorf("categories = %v", names)
	}
	brown := s.Blocks[3]
	if brown.Fill.Kind != model.FillGradient || len(brown.Fill.Stops) != 2 {
		t.Errorf("Brown fill = %+v, want a two-stop gradient", brown.Fill)
	}
	if s.Blocks[5].Fill.Primary() != config.Default().Palette.Default {
		t.Errorf("uncategorised fill = %+v", s.Blocks[5].Fill)
	}
	if len(s.Labels) == 0 || s.Labels[0].Year != 1865 {
		t.Errorf("labels = %v", s.Labels)
	}
}
