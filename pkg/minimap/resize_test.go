package minimap

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/viewport"
)

const mmWidth = 1200

func TestWidthBounds(t *testing.T) {
	vp := newViewport()
	b, ok := WidthBounds(vp, mmWidth, 12)
	if !ok {
		t.Fatal("expected bounds")
	}
	if !scalar.EqualWithinAbs(b.Min, 800.0*1200/(201*200), 1e-9) {
		t.Errorf("Min = %g", b.Min)
	}
	if !scalar.EqualWithinAbs(b.Max, 800.0*1200/(201*28), 1e-9) {
		t.Errorf("Max = %g", b.Max)
	}

	empty := viewport.New(viewport.DefaultOptions())
	if _, ok := WidthBounds(empty, mmWidth, 12); ok {
		t.Error("no year range should yield no bounds")
	}
}

func TestResizeRightEdgeKeepsLeftEdge(t *testing.T) {
	vp := newViewport()
	vp.Pan(2000)
	m := New(Size{Width: mmWidth, Height: 60}, DefaultOptions(), nil)

	before := ProjectIndicator(vp.Scroll(), vp.ViewportWidth(), vp.ContentWidth(), mmWidth)
	leftFraction := vp.EdgeFraction(viewport.EdgeLeft)

	m.BeginResize(viewport.EdgeRight, before.Right(), vp)
	m.ResizeTo(before.Right()+50, vp)

	p, ok := m.Preview()
	if !ok {
		t.Fatal("expected a preview")
	}
	if !scalar.EqualWithinAbs(p.Left, before.Left, 1e-9) {
		t.Errorf("preview Left = %g, want %g", p.Left, before.Left)
	}
	if !scalar.EqualWithinAbs(p.Width, before.Width+50, 1e-9) {
		t.Errorf("preview Width = %g, want %g", p.Width, before.Width+50)
	}
	if vp.Scale() != 50 {
		t.Error("preview must not change the real scale")
	}
	if m.Indicator().Width != p.Width {
		t.Error("Indicator() should show the preview while resizing")
	}

	if !m.EndResize(vp) {
		t.Fatal("EndResize should commit")
	}
	if !scalar.EqualWithinAbs(vp.Scale(), p.Scale, 1e-9) {
		t.Errorf("Scale() = %g, want %g", vp.Scale(), p.Scale)
	}
	if got := vp.EdgeFraction(viewport.EdgeLeft); !scalar.EqualWithinAbs(got, leftFraction, 1e-9) {
		t.Errorf("left edge fraction = %g, want %g", got, leftFraction)
	}
	after := ProjectIndicator(vp.Scroll(), vp.ViewportWidth(), vp.ContentWidth(), mmWidth)
	if !scalar.EqualWithinAbs(after.Width, p.Width, 1e-6) {
		t.Errorf("committed indicator width = %g, preview was %g", after.Width, p.Width)
	}
	if _, resizing := m.Resizing(); resizing {
		t.Error("resize still active after EndResize")
	}
}

func TestResizeLeftEdgeClampsToMinScale(t *testing.T) {
	vp := newViewport()
	vp.Pan(2000)
	m := New(Size{Width: mmWidth, Height: 60}, DefaultOptions(), nil)
	rightFraction := vp.EdgeFraction(viewport.EdgeRight)
	before := ProjectIndicator(vp.Scroll(), vp.ViewportWidth(), vp.ContentWidth(), mmWidth)

	m.BeginResize(viewport.EdgeLeft, -1000, vp)
	p, _ := m.Preview()

	bounds, _ := WidthBounds(vp, mmWidth, 12)
	if !scalar.EqualWithinAbs(p.Width, bounds.Max, 1e-9) {
		t.Errorf("preview Width = %g, want max %g", p.Width, bounds.Max)
	}
	if !scalar.EqualWithinAbs(p.Left, before.Right()-bounds.Max, 1e-9) {
		t.Errorf("preview Left = %g, want %g", p.Left, before.Right()-bounds.Max)
	}
	if !scalar.EqualWithinAbs(p.Scale, 28, 1e-9) {
		t.Errorf("preview Scale = %g, want 28", p.Scale)
	}

	m.EndResize(vp)
	if got := vp.EdgeFraction(viewport.EdgeRight); !scalar.EqualWithinAbs(got, rightFraction, 1e-9) {
		t.Errorf("right edge fraction = %g, want %g", got, rightFraction)
	}
}

func TestResizeCollapsedHitsMaxScale(t *testing.T) {
	vp := newViewport()
	vp.Pan(2000)
	m := New(Size{Width: mmWidth, Height: 60}, DefaultOptions(), nil)

	m.BeginResize(viewport.EdgeRight, 0, vp)
	p, _ := m.Preview()
	if !scalar.EqualWithinAbs(p.Scale, 200, 1e-9) {
		t.Errorf("preview Scale = %g, want 200", p.Scale)
	}
}

func TestEndResizeWithoutPreview(t *testing.T) {
	vp := viewport.New(viewport.DefaultOptions())
	m := New(Size{Width: mmWidth, Height: 60}, DefaultOptions(), nil)

	m.BeginResize(viewport.EdgeLeft, 10, vp)
	if m.EndResize(vp) {
		t.Error("nothing to commit without content")
	}
	if vp.Gesture() != viewport.GestureIdle {
		t.Errorf("Gesture() = %v, want idle", vp.Gesture())
	}
}

func TestResizeIgnoredAfterGestureChange(t *testing.T) {
	vp := newViewport()
	m := New(Size{Width: mmWidth, Height: 60}, DefaultOptions(), nil)
	m.BeginResize(viewport.EdgeRight, 200, vp)
	first, _ := m.Preview()

	vp.BeginPan(10) // a different gesture abandons the resize
	if m.ResizeTo(400, vp) {
		t.Error("ResizeTo should be ignored once another gesture started")
	}
	if p, _ := m.Preview(); p != first {
		t.Errorf("preview changed: %+v -> %+v", first, p)
	}
}
