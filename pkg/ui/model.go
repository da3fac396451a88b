// Package ui is the interactive terminal view of a timeline.
package ui

import (
	"fmt"
	"sort"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/reconcile"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/timeline"
)

// FadeDuration is how long an element stays faint while fading in or out.
const FadeDuration = 300 * time.Millisecond

// wheelDelta is the delta reported for one wheel notch, matching a browser
// wheel event in pixel mode.
const wheelDelta = 100

type (
	frameMsg       time.Time
	wheelQuietMsg  time.Time
	initialDoneMsg struct{}
	fadeOutDoneMsg struct{ fades []reconcile.Fade }
	fadeInDoneMsg  struct{ ids []int }
	clearStatusMsg struct{ seq int }
)

// ReloadMsg carries a freshly loaded data set, as produced by a file watcher.
type ReloadMsg struct {
	Events []model.Event
	Err    error
}

// Options wires the model to its surroundings.
type Options struct {
	// Copy writes text to the clipboard. Defaults to the system clipboard.
	Copy func(string) error
	// Changes, when set, signals that the event file changed; Reload is then
	// called to re-read it.
	Changes <-chan struct{}
	Reload  func() ([]model.Event, error)
	// Now is the clock used for wheel gestures. Defaults to time.Now.
	Now func() time.Time
}

// Model is the Bubble Tea model for the timeline view.
type Model struct {
	tl    *timeline.Timeline
	opts  Options
	theme Theme

	width, height int
	started       bool
	quitting      bool

	help   HelpOverlayModel
	detail DetailModel
	search SearchModel

	selected int
	hovered  int

	// pointer state for press/drag/release on the lanes
	pressID int
	pressX  int
	dragged bool

	renders   int
	status    string
	statusSeq int
}

// NewModel creates the view over tl. The timeline is started on the first
// window size message.
func NewModel(tl *timeline.Timeline, opts Options) Model {
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	theme := DefaultTheme(nil)
	return Model{
		tl:       tl,
		opts:     opts,
		theme:    theme,
		help:     NewHelpOverlayModel(theme),
		detail:   NewDetailModel(theme),
		search:   NewSearchModel(theme),
		selected: -1,
		hovered:  -1,
		pressID:  -1,
	}
}

// Timeline returns the timeline being viewed.
func (m Model) Timeline() *timeline.Timeline {
	return m.tl
}

// Selected returns the selected event ID, or -1.
func (m Model) Selected() int {
	return m.selected
}

// Status returns the footer message, if any.
func (m Model) Status() string {
	return m.status
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) geometry() geometry {
	lanes := m.tl.Layout().ActiveLaneCount
	if lanes < 1 {
		lanes = 1
	}
	return geometry{
		width:     m.width,
		height:    m.height,
		cellWidth: m.tl.Config().Terminal.CellWidth,
		lanes:     lanes,
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmds = append(cmds, m.resize(msg.Width, msg.Height))

	case frameMsg:
		m.tl.Frame()

	case wheelQuietMsg:
		m.tl.WheelIdle(time.Time(msg))

	case initialDoneMsg:
		m.tl.MarkInitialRenderDone()

	case fadeOutDoneMsg:
		for _, f := range msg.fades {
			m.tl.FadeOutComplete(f.ID, f.Gen)
		}

	case fadeInDoneMsg:
		for _, id := range msg.ids {
			m.tl.Reconciler().FadeInComplete(id)
		}

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}

	case ReloadMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.setStatus(fmt.Sprintf("reload failed: %v", msg.Err)))
		} else {
			m.tl.Reload(msg.Events)
			m.selected, m.hovered = -1, -1
			if m.detail.IsVisible() {
				m.detail.Hide()
			}
			cmds = append(cmds, m.setStatus(fmt.Sprintf("reloaded %d events", len(msg.Events))))
		}
		cmds = append(cmds, m.waitForChange())

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		if !m.overlayVisible() {
			cmds = append(cmds, m.handleMouse(msg))
		}
	}

	if m.quitting {
		return m, tea.Quit
	}
	cmds = append(cmds, m.afterUpdate()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	m.help.SetSize(width, height)
	m.detail.SetSize(width, height)
	m.search.SetSize(width)

	g := m.geometry()
	m.tl.SetMinimapWidth(g.pixelWidth())
	if !m.started {
		m.started = true
		m.tl.Start(g.pixelWidth())
		debug.Log("ui: started at %dx%d (%.0fpx)", width, height, g.pixelWidth())
		return tea.Tick(m.tl.InitialRenderDelay(), func(time.Time) tea.Msg { return initialDoneMsg{} })
	}
	m.tl.SetViewportWidth(g.pixelWidth())
	return nil
}

// afterUpdate schedules the frame callback and fade timers the last update
// asked for. At most one frame tick is ever outstanding.
func (m *Model) afterUpdate() []tea.Cmd {
	var cmds []tea.Cmd
	if m.tl.TakeFrameRequest() {
		cmds = append(cmds, tea.Tick(m.tl.Config().FrameInterval(), func(t time.Time) tea.Msg { return frameMsg(t) }))
	}
	if r := m.tl.Renders(); r != m.renders {
		m.renders = r
		d := m.tl.LastDiff()
		if len(d.FadingOut) > 0 {
			fades := append([]reconcile.Fade(nil), d.FadingOut...)
			cmds = append(cmds, tea.Tick(FadeDuration, func(time.Time) tea.Msg { return fadeOutDoneMsg{fades: fades} }))
		}
		if ids := m.fadingIn(d); len(ids) > 0 {
			cmds = append(cmds, tea.Tick(FadeDuration, func(time.Time) tea.Msg { return fadeInDoneMsg{ids: ids} }))
		}
	}
	return cmds
}

func (m Model) fadingIn(d reconcile.Diff) []int {
	var ids []int
	for _, group := range [][]int{d.Created, d.Restored} {
		for _, id := range group {
			if el, ok := m.tl.Reconciler().Element(id); ok && el.FadingIn {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m Model) waitForChange() tea.Cmd {
	ch, reload := m.opts.Changes, m.opts.Reload
	if ch == nil || reload == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		events, err := reload()
		return ReloadMsg{Events: events, Err: err}
	}
}

func (m Model) overlayVisible() bool {
	return m.help.IsVisible() || m.detail.IsVisible() || m.search.IsVisible()
}

// openDetail shows the modal for id and selects it.
func (m *Model) openDetail(id int) {
	e, ok := m.tl.EventAt(id)
	if !ok {
		return
	}
	m.selectEvent(id)
	m.detail.Show(e, m.tl.Palette())
}

func (m *Model) selectEvent(id int) {
	m.selected = id
	m.tl.Reconciler().Select(id)
}

// visibleOrder returns the laid-out events sorted left to right.
func (m Model) visibleOrder() []int {
	pos := append([]layoutPos(nil), m.positions()...)
	sort.SliceStable(pos, func(i, j int) bool {
		if pos[i].left != pos[j].left {
			return pos[i].left < pos[j].left
		}
		return pos[i].lane < pos[j].lane
	})
	ids := make([]int, len(pos))
	for i, p := range pos {
		ids[i] = p.id
	}
	return ids
}

type layoutPos struct {
	id   int
	left float64
	lane int
}

func (m Model) positions() []layoutPos {
	res := m.tl.Layout()
	out := make([]layoutPos, len(res.Positions))
	for i, p := range res.Positions {
		out[i] = layoutPos{id: p.EventID, left: p.Left, lane: p.LaneIndex}
	}
	return out
}

// cycleSelection moves the selection by step through the visible events
// and brings the new one into view.
func (m *Model) cycleSelection(step int) {
	ids := m.visibleOrder()
	if len(ids) == 0 {
		return
	}
	next := 0
	if step < 0 {
		next = len(ids) - 1
	}
	for i, id := range ids {
		if id == m.selected {
			next = (i + step + len(ids)) % len(ids)
			break
		}
	}
	m.selectEvent(ids[next])
	if e, ok := m.tl.EventAt(ids[next]); ok {
		m.tl.CenterOn(midYear(e))
	}
}

func midYear(e model.Event) float64 {
	return float64(e.StartYear+e.EndYear+1) / 2
}
