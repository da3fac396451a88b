// Package timeline is the controller that owns every piece of timeline
// state and runs render passes.
//
// A Timeline is driven from a single event loop. Gesture handlers call its
// methods; work that must wait for the next animation frame is requested on
// a shared frame.Scheduler and performed by Frame. Callers check
// TakeFrameRequest after each input to learn whether a frame callback has to
// be scheduled.
package timeline

import (
	"time"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/categories"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/config"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/frame"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/layout"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/loader"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/minimap"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/reconcile"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/viewport"
)

// Timeline is the orchestrator.
type Timeline struct {
	cfg config.Config

	events  []model.Event
	years   model.YearRange
	palette *categories.Palette
	vis     *categories.Visibility

	vp    *viewport.State
	wheel *viewport.WheelZoom
	sched *frame.Scheduler
	mm    *minimap.Minimap
	rec   *reconcile.Reconciler

	layout   layout.Result
	fills    map[int]model.Fill
	lastDiff reconcile.Diff
	initial  bool
	renders  int
	newFrame bool
}

// New builds a timeline over events, which must already be prepared (IDs
// and categories assigned). Nothing is rendered until Start.
func New(events []model.Event, cfg config.Config) *Timeline {
	sched := &frame.Scheduler{}
	t := &Timeline{
		cfg: cfg,
		vp: viewport.New(viewport.Options{
			Scale:      cfg.Zoom.DefaultYearWidth,
			MinScale:   cfg.Zoom.MinYearWidth,
			MaxScale:   cfg.Zoom.MaxYearWidth,
			ButtonStep: cfg.Zoom.ButtonStep,
		}),
		wheel: viewport.NewWheelZoom(cfg.Zoom.WheelSensitivity, cfg.Zoom.WheelMaxStep, cfg.WheelQuiet()),
		sched: sched,
		mm: minimap.New(minimap.Size{Width: cfg.Minimap.Width, Height: cfg.Minimap.Height}, minimap.Options{
			BarGap:            cfg.Minimap.BarGap,
			MinBarHeight:      cfg.Minimap.MinBarHeight,
			MinIndicatorWidth: cfg.Minimap.MinIndicatorWidth,
			MinVisibleWidth:   cfg.Minimap.MinVisibleWidth,
		}, sched),
		rec: reconcile.New(),
	}
	t.setEvents(events)
	return t
}

func (t *Timeline) setEvents(events []model.Event) {
	t.events = events
	t.years = loader.YearBounds(events)
	cats := categories.Extract(events)
	t.palette = categories.NewPalette(cats, t.cfg.Palette.Colors, t.cfg.Palette.Default)
	t.vis = categories.NewVisibility(cats)
	t.fills = make(map[int]model.Fill, len(events))
	for _, e := range events {
		t.fills[e.ID] = t.palette.FillFor(e)
	}
	t.vp.SetYears(t.years)
	t.rec.Reset()
	t.initial = true
}

// Start performs the initial render and scrolls to the latest years.
func (t *Timeline) Start(viewportWidth float64) reconcile.Diff {
	t.vp.SetViewportWidth(viewportWidth)
	d := t.Render()
	t.vp.ScrollToEnd()
	t.refreshMinimap(false)
	return d
}

// Reload replaces the data set. Visibility resets, except that categories
// hidden before and still present stay hidden. The current scale is kept.
func (t *Timeline) Reload(events []model.Event) reconcile.Diff {
	hidden := t.vis.HideValue()
	t.setEvents(events)
	t.vis.ApplyHideValue(hidden)
	debug.Log("timeline: reloaded %d events, years %d-%d", len(events), t.years.Min, t.years.Max)
	return t.Start(t.vp.ViewportWidth())
}

// Config returns the configuration the timeline was built with.
func (t *Timeline) Config() config.Config { return t.cfg }

func (t *Timeline) Events() []model.Event { return t.events }

func (t *Timeline) Years() model.YearRange { return t.years }

func (t *Timeline) Viewport() *viewport.State { return t.vp }

func (t *Timeline) Visibility() *categories.Visibility { return t.vis }

func (t *Timeline) Palette() *categories.Palette { return t.palette }

func (t *Timeline) Minimap() *minimap.Minimap { return t.mm }

func (t *Timeline) Reconciler() *reconcile.Reconciler { return t.rec }

func (t *Timeline) WheelZoom() *viewport.WheelZoom { return t.wheel }

// Layout returns the result of the last render pass.
func (t *Timeline) Layout() layout.Result { return t.layout }

// LastDiff is what the last render pass changed.
func (t *Timeline) LastDiff() reconcile.Diff { return t.lastDiff }

// Renders counts render passes.
func (t *Timeline) Renders() int { return t.renders }

// Initial reports whether the first paint is still in progress.
func (t *Timeline) Initial() bool { return t.initial }

// FillFor returns an event's precomputed fill.
func (t *Timeline) FillFor(id int) model.Fill {
	if f, ok := t.fills[id]; ok {
		return f
	}
	return model.Solid(t.palette.Default())
}

// LayoutOptions derives layout options from the configuration.
func (t *Timeline) LayoutOptions() layout.Options {
	return layout.Options{LaneCapacity: t.cfg.Lanes.Capacity, EventInset: t.cfg.Lanes.EventInset}
}

// VerticalMetrics derives vertical placement from the configuration.
func (t *Timeline) VerticalMetrics() layout.VerticalMetrics {
	return layout.VerticalMetrics{
		LayerHeight: t.cfg.Lanes.LayerHeight,
		EventHeight: t.cfg.Lanes.EventHeight,
		LaneSpacing: t.cfg.Lanes.Spacing,
		MaxPushUp:   t.cfg.Lanes.MaxPushUp,
		PushUpScale: t.cfg.Lanes.PushUpScale,
		Capacity:    t.cfg.Lanes.Capacity,
	}
}

// LabelLevels converts configured interval levels.
func (t *Timeline) LabelLevels() []layout.IntervalLevel {
	levels := make([]layout.IntervalLevel, len(t.cfg.Labels.Levels))
	for i, l := range t.cfg.Labels.Levels {
		levels[i] = layout.IntervalLevel{MaxWidth: l.MaxWidth, Interval: l.Interval}
	}
	return levels
}

// YearLabels returns the axis ticks for the current scale.
func (t *Timeline) YearLabels() []layout.YearLabel {
	return layout.YearLabels(t.years, t.vp.Scale(), t.LabelLevels())
}

// CondensedLabels reports whether the axis uses compact labels.
func (t *Timeline) CondensedLabels() bool {
	levels := t.LabelLevels()
	return layout.Condensed(t.vp.Scale(), t.cfg.Labels.CondensedThreshold, layout.LabelInterval(t.vp.Scale(), levels))
}

// VisibleEvents returns the events passing the category filter, in data order.
func (t *Timeline) VisibleEvents() []model.Event {
	return t.vis.Filter(t.events)
}

// Render runs one pass: filter, lay out, reconcile, and mark the minimap
// dirty.
func (t *Timeline) Render() reconcile.Diff {
	t.layout = layout.Compute(t.VisibleEvents(), t.years, t.vp.Scale(), t.LayoutOptions())
	t.lastDiff = t.rec.Reconcile(reconcile.Pass{
		Layout:        t.layout,
		Fill:          t.FillFor,
		Metrics:       t.VerticalMetrics(),
		MinLabelWidth: t.cfg.Labels.MinEventLabelWidth,
		Zooming:       t.vp.Zooming(),
		Initial:       t.initial,
	})
	t.renders++
	if len(t.layout.Degraded) > 0 {
		debug.Log("timeline: %d events clamped into lane %d", len(t.layout.Degraded), t.layout.ActiveLaneCount-1)
	}
	t.refreshMinimap(true)
	return t.lastDiff
}

// MarkInitialRenderDone ends the first-paint period; later additions fade in.
func (t *Timeline) MarkInitialRenderDone() {
	t.initial = false
}

// InitialRenderDelay is how long the first paint lasts.
func (t *Timeline) InitialRenderDelay() time.Duration {
	return t.cfg.InitialRenderDelay()
}

func (t *Timeline) refreshMinimap(redraw bool) {
	if t.mm.Refresh(redraw) {
		t.newFrame = true
	}
}

func (t *Timeline) request(w frame.Work) {
	if t.sched.Request(w) {
		t.newFrame = true
	}
}

// TakeFrameRequest reports, once, that a frame callback must be scheduled.
func (t *Timeline) TakeFrameRequest() bool {
	r := t.newFrame
	t.newFrame = false
	return r
}

// Frame runs everything requested since the previous frame: at most one
// wheel zoom, then minimap redraw and indicator updates.
func (t *Timeline) Frame() frame.Work {
	w := t.sched.Flush()
	if w.Has(frame.Zoom) && t.wheel.Apply(t.vp) {
		t.settleZoom()
		// the zoom's own minimap request landed on the scheduler again; fold it
		// into this frame
		w |= t.sched.Flush()
		t.newFrame = t.sched.Pending()
	}
	t.mm.Apply(w, t, t.vp)
	return w
}

func (t *Timeline) settleZoom() {
	t.Render()
	t.vp.Settle()
}
