package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/viewport"
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, nil
	}

	switch {
	case m.help.IsVisible():
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd

	case m.search.IsVisible():
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if e, ok := m.search.Chosen(); ok && !m.search.IsVisible() {
			m.selectEvent(e.ID)
			m.tl.CenterOn(midYear(e))
		}
		return m, cmd

	case m.detail.IsVisible():
		return m.handleDetailKey(msg)
	}

	vp := m.tl.Viewport()
	switch key {
	case "q":
		m.quitting = true
	case "esc":
		m.selectEvent(-1)
	case "?":
		m.help.SetCategories(m.tl.Palette().Categories())
		m.help.Toggle()
	case "h", "left":
		m.tl.PanBy(-vp.ViewportWidth() / 4)
	case "l", "right":
		m.tl.PanBy(vp.ViewportWidth() / 4)
	case "H", "home":
		m.tl.Pan(0)
	case "L", "end":
		m.tl.Pan(vp.MaxScroll())
	case "+", "=":
		if vp.CanZoomIn() {
			m.tl.ZoomIn()
		}
	case "-", "_":
		if vp.CanZoomOut() {
			m.tl.ZoomOut()
		}
	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)
	case "enter":
		if m.selected >= 0 {
			m.openDetail(m.selected)
		}
	case "/":
		m.search.Open(m.tl.Events())
		return m, nil
	case "0":
		m.tl.ShowAllCategories()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		cats := m.tl.Palette().Categories()
		if n := int(key[0] - '0'); n <= len(cats) {
			m.tl.ToggleCategory(cats[n-1])
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	id := m.detail.Event().ID
	switch msg.String() {
	case "esc", "q":
		m.detail.Hide()
		return m, nil
	case "[":
		if e, ok := m.tl.Prev(id); ok {
			m.openDetail(e.ID)
		}
		return m, nil
	case "]":
		if e, ok := m.tl.Next(id); ok {
			m.openDetail(e.ID)
		}
		return m, nil
	case "y":
		link, ok := firstLink(m.detail.Event())
		if !ok {
			return m, m.setStatus("no link to copy")
		}
		if err := m.opts.Copy(link); err != nil {
			return m, m.setStatus("copy failed: " + err.Error())
		}
		return m, m.setStatus("copied " + link)
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// handleMouse routes pointer input: wheel zoom and pan, drag-to-pan on the
// lanes, and navigation or edge resizing on the minimap strip.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.started {
		return nil
	}
	g := m.geometry()
	x := g.colToX(msg.X)
	vp := m.tl.Viewport()

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		dir := 1.0
		if msg.Button == tea.MouseButtonWheelUp {
			dir = -1
		}
		if msg.Ctrl {
			now := m.opts.Now()
			m.tl.Wheel(now, dir*wheelDelta, x)
			quiet := m.tl.Config().WheelQuiet()
			return tea.Tick(quiet, func(t time.Time) tea.Msg { return wheelQuietMsg(now.Add(quiet)) })
		}
		m.tl.PanBy(dir * 4 * g.cellWidth)
		return nil
	case tea.MouseButtonWheelLeft:
		m.tl.PanBy(-4 * g.cellWidth)
		return nil
	case tea.MouseButtonWheelRight:
		m.tl.PanBy(4 * g.cellWidth)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if g.inMinimap(msg.Y) {
			if edge, ok := m.tl.Minimap().HitEdge(x, g.cellWidth); ok {
				m.tl.BeginMinimapResize(edge, x)
			} else {
				m.tl.BeginMinimapDrag(x)
			}
			return nil
		}
		if _, ok := g.laneAt(msg.Y); ok {
			m.pressID = m.eventAt(g, msg.X, msg.Y)
			m.pressX = msg.X
			m.dragged = false
			m.tl.BeginPan(x)
		}

	case tea.MouseActionMotion:
		switch vp.Gesture() {
		case viewport.GestureDraggingPan:
			if msg.X != m.pressX {
				m.dragged = true
			}
			m.tl.DragPan(x)
		case viewport.GestureDraggingMinimap:
			m.tl.DragMinimap(x)
		case viewport.GestureResizingMinimapEdge:
			m.tl.ResizeMinimap(x)
		default:
			m.hover(g, msg.X, msg.Y)
		}

	case tea.MouseActionRelease:
		g0 := m.tl.PointerUp()
		if g0 == viewport.GestureDraggingPan && !m.dragged && m.pressID >= 0 {
			m.openDetail(m.pressID)
		}
		m.pressID = -1
	}
	return nil
}

// eventAt returns the event drawn at a lane cell, or -1.
func (m Model) eventAt(g geometry, col, y int) int {
	lane, ok := g.laneAt(y)
	if !ok {
		return -1
	}
	x := m.tl.Viewport().Scroll() + g.colToX(col)
	if p, ok := m.tl.Layout().At(x, lane); ok {
		return p.EventID
	}
	return -1
}

// hover tracks the element under the pointer and mirrors it on the minimap.
func (m *Model) hover(g geometry, col, y int) {
	id := m.eventAt(g, col, y)
	if id == m.hovered {
		return
	}
	rec := m.tl.Reconciler()
	if m.hovered >= 0 {
		rec.SetHovered(m.hovered, false)
	}
	m.hovered = id
	if id < 0 {
		m.tl.Minimap().ClearHighlight()
		return
	}
	rec.SetHovered(id, true)
	res := m.tl.Layout()
	if p, ok := res.Find(id); ok {
		m.tl.Minimap().Highlight(p, res.ActiveLaneCount, res.ContentWidth)
	}
}
