package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/categories"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/reconcile"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading…"
	}

	switch {
	case m.help.IsVisible():
		return m.center(m.help.View())
	case m.detail.IsVisible():
		return m.center(m.detail.View())
	case m.search.IsVisible():
		return m.center(m.search.View())
	}

	g := m.geometry()
	lines := make([]string, 0, g.footerRow()+1)
	lines = append(lines, m.renderHeader())
	lines = append(lines, m.renderCategories())
	lines = append(lines, "")
	for _, r := range m.renderLanes(g) {
		lines = append(lines, r.render(m.theme))
	}
	axis, labels := m.renderAxis(g)
	lines = append(lines, axis.render(m.theme), labels.render(m.theme))
	lines = append(lines, RenderDivider(m.width))
	for _, r := range m.renderMinimap(g) {
		lines = append(lines, r.render(m.theme))
	}
	lines = append(lines, "")
	lines = append(lines, m.renderFooter())
	return strings.Join(lines, "\n")
}

func (m Model) center(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderHeader() string {
	vp := m.tl.Viewport()
	yr := m.tl.Years()
	minS, maxS := vp.Limits()

	title := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("timeline")
	span := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).
		Render(fmt.Sprintf(" %d–%d  center %.0f ", yr.Min, yr.Max, vp.CenterYear()))
	zoom := fmt.Sprintf(" %.0fpx/yr ", vp.Scale())
	bar := RenderZoomBar((vp.Scale()-minS)/(maxS-minS), 12, m.theme)

	line := title + span + zoom + bar
	if g := vp.Gesture(); g.String() != "idle" {
		line += m.theme.Renderer.NewStyle().Foreground(m.theme.Warning).Render("  " + g.String())
	}
	return m.theme.Renderer.NewStyle().MaxWidth(m.width).Render(line)
}

func (m Model) renderCategories() string {
	pal := m.tl.Palette()
	vis := m.tl.Visibility()
	parts := make([]string, 0, len(pal.Categories()))
	for i, c := range pal.Categories() {
		parts = append(parts, RenderCategoryBadge(m.theme, i+1, c, pal.Color(c), vis.Hidden(c)))
	}
	if len(parts) == 0 {
		return ""
	}
	return m.theme.Renderer.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, " "))
}

// renderLanes draws every live element, lane 0 on the bottom row. Elements
// that are fading in or out are drawn faint.
func (m Model) renderLanes(g geometry) []row {
	rows := make([]row, g.lanes)
	for i := range rows {
		rows[i] = newRow(g.width)
	}
	scroll := m.tl.Viewport().Scroll()

	for _, el := range m.tl.Reconciler().Elements() {
		if el.Phase == reconcile.PhaseRemoved || el.Attrs.Lane >= g.lanes {
			continue
		}
		c0, c1 := g.span(el.Attrs.Left-scroll, el.Attrs.Width)
		if c1 <= 0 || c0 >= g.width {
			continue
		}
		r := rows[g.lanes-1-el.Attrs.Lane]
		span := float64(c1 - c0)
		first, last := max(c0, 0), min(c1, g.width)
		for c := first; c < last; c++ {
			bg := categories.Sample(el.Attrs.Fill, (float64(c-c0)+0.5)/span)
			r.set(c, cell{
				ch:    ' ',
				bg:    bg,
				fg:    contrastText(bg),
				faint: el.Phase == reconcile.PhaseFadingOut || el.FadingIn,
				bold:  el.Selected,
				under: el.Hovered,
			})
		}
		if !el.Attrs.ShowLabel {
			continue
		}
		if e, ok := m.tl.EventAt(el.EventID); ok {
			r.overlay(first+1, truncate(e.Title, last-first-2))
		}
	}
	return rows
}

func (m Model) renderAxis(g geometry) (row, row) {
	axis, labels := newRow(g.width), newRow(g.width)
	line := cell{ch: '─', fg: string(ColorMuted)}
	for c := range axis {
		axis.set(c, line)
	}

	scroll := m.tl.Viewport().Scroll()
	style := cell{fg: string(ColorSubtext)}
	if m.tl.CondensedLabels() {
		style.faint = true
	}
	next := 0
	for _, l := range m.tl.YearLabels() {
		c := g.xToCol(l.X - scroll + m.tl.Viewport().Scale()/2)
		if c < 0 || c >= g.width {
			continue
		}
		axis.set(c, cell{ch: '┴', fg: string(ColorMuted)})
		if c < next {
			continue
		}
		n := labels.text(c, fmt.Sprintf("%d", l.Year), style)
		next = c + n + 1
	}
	return axis, labels
}

// renderMinimap draws the overview strip with the viewport indicator.
func (m Model) renderMinimap(g geometry) []row {
	mm := m.tl.Minimap()
	size := mm.Size()
	rows := make([]row, minimapRows)
	for i := range rows {
		rows[i] = newRow(g.width)
		for c := range rows[i] {
			rows[i].set(c, cell{ch: ' ', bg: string(ColorBgDark)})
		}
	}

	ind := mm.Indicator().Visible(mm.Options().MinVisibleWidth)
	il, ir := g.span(ind.Left, ind.Width)
	for _, r := range rows {
		for c := max(il, 0); c < min(ir, g.width); c++ {
			r.set(c, cell{ch: ' ', bg: string(ColorBgHighlight)})
		}
	}

	hl, hasHL := mm.Highlighted()
	for _, b := range mm.Bars() {
		c0, c1 := g.span(b.X, b.Width)
		r := rows[minimapRow(b.Y+b.Height/2, size.Height)]
		span := float64(c1 - c0)
		for c := max(c0, 0); c < min(c1, g.width); c++ {
			fg := categories.Sample(b.Fill, (float64(c-c0)+0.5)/span)
			r.set(c, cell{ch: '▆', fg: fg, bg: r[c].bg, bold: hasHL && hl.EventID == b.EventID})
		}
	}

	edge := string(ColorPrimary)
	for _, r := range rows {
		if il >= 0 && il < g.width {
			r.set(il, cell{ch: '▏', fg: edge, bg: r[il].bg, bold: true})
		}
		if ir-1 >= 0 && ir-1 < g.width {
			r.set(ir-1, cell{ch: '▕', fg: edge, bg: r[ir-1].bg, bold: true})
		}
	}
	return rows
}

func (m Model) renderFooter() string {
	style := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).Faint(true)
	msg := "h/l pan  +/- zoom  ctrl+wheel zoom  1-9 categories  / search  enter details  ? help  q quit"
	if m.status != "" {
		style = m.theme.Renderer.NewStyle().Foreground(m.theme.Warning)
		msg = m.status
	}
	return style.MaxWidth(m.width).Render(truncate(msg, m.width))
}
