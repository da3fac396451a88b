package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/categories"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// DetailModel is the event modal: title, years, category chips and a
// scrollable markdown body with descriptions and links.
type DetailModel struct {
	viewport viewport.Model
	event    model.Event
	palette  *categories.Palette
	visible  bool
	width    int
	height   int
	theme    Theme

	rendered string // markdown source of the current body, for tests
	err      error
}

// NewDetailModel creates a hidden modal.
func NewDetailModel(theme Theme) DetailModel {
	return DetailModel{
		viewport: viewport.New(60, 12),
		theme:    theme,
	}
}

// Show opens the modal on e.
func (m *DetailModel) Show(e model.Event, pal *categories.Palette) {
	m.event = e
	m.palette = pal
	m.visible = true
	m.renderBody()
}

// Hide closes the modal.
func (m *DetailModel) Hide() {
	m.visible = false
}

// IsVisible returns true if the modal is showing.
func (m DetailModel) IsVisible() bool {
	return m.visible
}

// Event returns the event on display.
func (m DetailModel) Event() model.Event {
	return m.event
}

// SetSize fits the modal into a width x height terminal.
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := width - 10
	if w > 90 {
		w = 90
	}
	if w < 30 {
		w = 30
	}
	h := height - 12
	if h < 4 {
		h = 4
	}
	m.viewport.Width = w
	m.viewport.Height = h
	if m.visible {
		m.renderBody()
	}
}

// Update forwards scrolling keys to the body.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *DetailModel) renderBody() {
	m.rendered = detailMarkdown(m.event)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(m.viewport.Width-2, 10)),
	)
	if err != nil {
		m.err = err
		m.viewport.SetContent(m.rendered)
		return
	}
	out, err := renderer.Render(m.rendered)
	if err != nil {
		m.err = err
		m.viewport.SetContent(m.rendered)
		return
	}
	m.err = nil
	m.viewport.SetContent(strings.TrimRight(out, "\n"))
	m.viewport.GotoTop()
}

// detailMarkdown lays out an event's descriptions and links as markdown.
// Descriptions keep document order; a video link is listed first.
func detailMarkdown(e model.Event) string {
	var b strings.Builder
	for _, d := range e.Descriptions {
		if strings.TrimSpace(d.Category) == "" {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", d.Category, strings.TrimSpace(d.Text))
	}
	if v, ok := e.VideoLink(); ok {
		fmt.Fprintf(&b, "**Video:** %s\n\n", v)
	}
	if e.ImageURL != "" {
		fmt.Fprintf(&b, "**Image:** %s\n\n", e.ImageURL)
	}
	if len(e.Links) > 0 {
		b.WriteString("## Links\n\n")
		for _, l := range e.Links {
			fmt.Fprintf(&b, "- %s\n", l)
		}
	}
	if b.Len() == 0 {
		return "_No description._"
	}
	return strings.TrimSpace(b.String())
}

// firstLink is what "y" copies: the first link, else the video.
func firstLink(e model.Event) (string, bool) {
	if len(e.Links) > 0 {
		return e.Links[0], true
	}
	return e.VideoLink()
}

// View renders the modal box.
func (m DetailModel) View() string {
	if !m.visible {
		return ""
	}
	var b strings.Builder

	title := m.event.Title
	if _, ok := m.event.VideoLink(); ok {
		title += " ▶"
	}
	b.WriteString(m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary).
		Width(m.viewport.Width).Render(title))
	b.WriteString("\n")

	meta := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).Render(m.event.YearLabel())
	for _, c := range m.event.Categories {
		color := "#888888"
		if m.palette != nil {
			color = m.palette.Color(c)
		}
		meta += "  " + m.theme.Renderer.NewStyle().Foreground(lipgloss.Color(color)).Render("●") + " " + c
	}
	b.WriteString(meta)
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")

	hint := "[↑/↓] scroll  [ / ] prev/next  [y] copy link  [Esc] close"
	b.WriteString(m.theme.Renderer.NewStyle().Faint(true).Render(hint))

	return m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Render(b.String())
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
