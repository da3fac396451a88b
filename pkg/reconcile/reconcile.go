// Package reconcile keeps a persistent set of visual elements, one per
// event, in step with successive layout passes.
//
// Elements are keyed by event ID, so hiding and re-showing an event reuses
// its element along with any hover or selection state. Removal goes through
// an explicit lifecycle:
//
//	visible -> fadingOut -> removed
//	fadingOut -> visible   (re-shown before the fade finished)
//
// During a zoom, removals are immediate and new elements skip the fade-in.
package reconcile

import (
	"sort"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/layout"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// Phase is an element's lifecycle state.
type Phase int

const (
	PhaseVisible Phase = iota
	PhaseFadingOut
	PhaseRemoved
)

func (p Phase) String() string {
	switch p {
	case PhaseFadingOut:
		return "fading-out"
	case PhaseRemoved:
		return "removed"
	default:
		return "visible"
	}
}

// Attrs are the presentation values reapplied on every pass.
type Attrs struct {
	Left      float64
	Width     float64
	Top       float64
	Lane      int
	Fill      model.Fill
	ShowLabel bool
}

func (a Attrs) equal(o Attrs) bool {
	return a.Left == o.Left && a.Width == o.Width && a.Top == o.Top &&
		a.Lane == o.Lane && a.ShowLabel == o.ShowLabel && a.Fill.Equal(o.Fill)
}

// Element is the visual element for one event.
type Element struct {
	EventID  int
	Phase    Phase
	FadingIn bool
	Hovered  bool
	Selected bool
	Attrs    Attrs
	// Revision increments only when Attrs actually change.
	Revision int
	// FadeGen counts visible -> fadingOut transitions, so a completion can
	// be matched to the fade that scheduled it.
	FadeGen int
}

// Fade identifies one fade-out: the element and the generation it started.
type Fade struct {
	ID  int
	Gen int
}

// Pass is the input of one reconciliation.
type Pass struct {
	Layout        layout.Result
	Fill          func(eventID int) model.Fill
	Metrics       layout.VerticalMetrics
	MinLabelWidth float64
	// Zooming suppresses fade transitions.
	Zooming bool
	// Initial suppresses fade-in for the first paint.
	Initial bool
}

// Diff reports what a pass changed. IDs are sorted.
type Diff struct {
	Created   []int
	Updated   []int
	Restored  []int // fadingOut -> visible
	FadingOut []Fade
	Removed   []int
}

// Empty reports whether the pass changed nothing.
func (d Diff) Empty() bool {
	return len(d.Created)+len(d.Updated)+len(d.Restored)+len(d.FadingOut)+len(d.Removed) == 0
}

// Reconciler owns the element set. It is not safe for concurrent use.
type Reconciler struct {
	elems map[int]*Element
}

// New returns an empty reconciler.
func New() *Reconciler {
	return &Reconciler{elems: make(map[int]*Element)}
}

// Reconcile applies one layout pass.
func (r *Reconciler) Reconcile(p Pass) Diff {
	var d Diff

	visible := make(map[int]layout.Position, len(p.Layout.Positions))
	for _, pos := range p.Layout.Positions {
		visible[pos.EventID] = pos
	}

	for id, el := range r.elems {
		if _, ok := visible[id]; ok {
			continue
		}
		switch {
		case p.Zooming:
			el.Phase = PhaseRemoved
			delete(r.elems, id)
			d.Removed = append(d.Removed, id)
		case el.Phase == PhaseVisible:
			el.Phase = PhaseFadingOut
			el.FadingIn = false
			el.FadeGen++
			d.FadingOut = append(d.FadingOut, Fade{ID: id, Gen: el.FadeGen})
		}
	}

	for _, pos := range p.Layout.Positions {
		attrs := p.attrsFor(pos)
		el, ok := r.elems[pos.EventID]
		if !ok {
			r.elems[pos.EventID] = &Element{
				EventID:  pos.EventID,
				Phase:    PhaseVisible,
				FadingIn: !p.Initial && !p.Zooming,
				Attrs:    attrs,
			}
			d.Created = append(d.Created, pos.EventID)
			continue
		}

		if el.Phase == PhaseFadingOut {
			el.Phase = PhaseVisible
			d.Restored = append(d.Restored, pos.EventID)
		}
		if p.Zooming {
			el.FadingIn = false
		}
		if !el.Attrs.equal(attrs) {
			el.Attrs = attrs
			el.Revision++
			d.Updated = append(d.Updated, pos.EventID)
		}
	}

	sort.Ints(d.Created)
	sort.Ints(d.Updated)
	sort.Ints(d.Restored)
	sortFades(d.FadingOut)
	sort.Ints(d.Removed)
	return d
}

func (p Pass) attrsFor(pos layout.Position) Attrs {
	a := Attrs{
		Left:      pos.Left,
		Width:     pos.Width,
		Lane:      pos.LaneIndex,
		Top:       p.Metrics.Top(pos.LaneIndex, p.Layout.ActiveLaneCount),
		ShowLabel: layout.ShowsLabel(pos.Width, p.MinLabelWidth),
	}
	if p.Fill != nil {
		a.Fill = p.Fill(pos.EventID)
	}
	return a
}

func sortFades(f []Fade) {
	sort.Slice(f, func(i, j int) bool { return f[i].ID < f[j].ID })
}

// FadeOutComplete finishes the fade-out of generation gen. An element that
// was re-shown in the meantime, or hidden again by a later fade, is left
// alone; the call reports whether it removed anything.
func (r *Reconciler) FadeOutComplete(id, gen int) bool {
	el, ok := r.elems[id]
	if !ok || el.Phase != PhaseFadingOut || el.FadeGen != gen {
		return false
	}
	el.Phase = PhaseRemoved
	delete(r.elems, id)
	return true
}

// FadeInComplete clears the fade-in flag of a new element.
func (r *Reconciler) FadeInComplete(id int) bool {
	el, ok := r.elems[id]
	if !ok || !el.FadingIn {
		return false
	}
	el.FadingIn = false
	return true
}

// Element returns a copy of one element.
func (r *Reconciler) Element(id int) (Element, bool) {
	el, ok := r.elems[id]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

// Elements returns copies of all live elements, fading ones included,
// ordered by event ID.
func (r *Reconciler) Elements() []Element {
	out := make([]Element, 0, len(r.elems))
	for _, el := range r.elems {
		out = append(out, *el)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })
	return out
}

// FadingOut lists the fades waiting for FadeOutComplete.
func (r *Reconciler) FadingOut() []Fade {
	var fades []Fade
	for id, el := range r.elems {
		if el.Phase == PhaseFadingOut {
			fades = append(fades, Fade{ID: id, Gen: el.FadeGen})
		}
	}
	sortFades(fades)
	return fades
}

// Len is the number of live elements.
func (r *Reconciler) Len() int {
	return len(r.elems)
}

// SetHovered marks hover state on an element.
func (r *Reconciler) SetHovered(id int, hovered bool) bool {
	el, ok := r.elems[id]
	if !ok {
		return false
	}
	el.Hovered = hovered
	return true
}

// Select marks one element selected and clears the rest. A negative id
// clears the selection.
func (r *Reconciler) Select(id int) {
	for eid, el := range r.elems {
		el.Selected = eid == id
	}
}

// Reset drops every element, as when the data set is replaced.
func (r *Reconciler) Reset() {
	r.elems = make(map[int]*Element)
}
