package timeline

import (
	"github.com/Dicklesworthstone/timeline_viewer/pkg/layout"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/minimap"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/viewport"
)

// Block is one positioned event with everything a renderer needs.
type Block struct {
	Event     model.Event     `json:"-"`
	Position  layout.Position `json:"position"`
	Top       float64         `json:"top"`
	Fill      model.Fill      `json:"fill"`
	ShowLabel bool            `json:"show_label"`
	Title     string          `json:"title"`
	Degraded  bool            `json:"degraded,omitempty"`
}

// Snapshot is a self-contained, read-only copy of the rendered timeline,
// used by exporters and the preview server.
type Snapshot struct {
	Years           model.YearRange        `json:"years"`
	Viewport        viewport.Snapshot      `json:"viewport"`
	Layout          layout.Result          `json:"layout"`
	Blocks          []Block                `json:"blocks"`
	Labels          []layout.YearLabel     `json:"labels"`
	CondensedLabels bool                   `json:"condensed_labels"`
	Categories      []CategoryInfo         `json:"categories"`
	Hidden          []string               `json:"hidden"`
	Minimap         minimap.Projection     `json:"minimap"`
	Metrics         layout.VerticalMetrics `json:"-"`
}

// CategoryInfo is a category with its color and visibility.
type CategoryInfo struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Hidden bool   `json:"hidden"`
}

// Snapshot captures the current render. The minimap projection is computed
// fresh rather than taken from the frame-coalesced state.
func (t *Timeline) Snapshot() Snapshot {
	metrics := t.VerticalMetrics()
	degraded := make(map[int]bool, len(t.layout.Degraded))
	for _, id := range t.layout.Degraded {
		degraded[id] = true
	}

	blocks := make([]Block, 0, len(t.layout.Positions))
	for _, p := range t.layout.Positions {
		e, _ := t.EventAt(p.EventID)
		blocks = append(blocks, Block{
			Event:     e,
			Position:  p,
			Top:       metrics.Top(p.LaneIndex, t.layout.ActiveLaneCount),
			Fill:      t.FillFor(p.EventID),
			ShowLabel: layout.ShowsLabel(p.Width, t.cfg.Labels.MinEventLabelWidth),
			Title:     e.Title,
			Degraded:  degraded[p.EventID],
		})
	}

	cats := make([]CategoryInfo, 0, len(t.palette.Categories()))
	for _, c := range t.palette.Categories() {
		cats = append(cats, CategoryInfo{Name: c, Color: t.palette.Color(c), Hidden: t.vis.Hidden(c)})
	}

	return Snapshot{
		Years:           t.years,
		Viewport:        t.vp.Snapshot(),
		Layout:          t.layout,
		Blocks:          blocks,
		Labels:          t.YearLabels(),
		CondensedLabels: t.CondensedLabels(),
		Categories:      cats,
		Hidden:          t.vis.HiddenList(),
		Minimap:         minimap.Project(t.layout, t.FillFor, t.vp.Scroll(), t.vp.ViewportWidth(), t.mm.Size(), t.mm.Options()),
		Metrics:         metrics,
	}
}
