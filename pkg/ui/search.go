package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

const maxSearchResults = 8

// SearchModel is the "/" prompt: fuzzy-matches event titles and picks one.
type SearchModel struct {
	input    textinput.Model
	events   []model.Event
	results  []model.Event
	selected int
	visible  bool
	width    int
	theme    Theme

	chosen    *model.Event
	cancelled bool
}

// NewSearchModel creates a hidden search prompt.
func NewSearchModel(theme Theme) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "search events…"
	ti.Prompt = "/ "
	ti.CharLimit = 80
	ti.Width = 40
	return SearchModel{input: ti, theme: theme}
}

// Open shows the prompt over events, clearing any previous query.
func (m *SearchModel) Open(events []model.Event) {
	m.events = events
	m.visible = true
	m.chosen = nil
	m.cancelled = false
	m.input.SetValue("")
	m.input.Focus()
	m.filter()
}

// Close hides the prompt.
func (m *SearchModel) Close() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns true if the prompt is showing.
func (m SearchModel) IsVisible() bool {
	return m.visible
}

// SetSize sets the available width.
func (m *SearchModel) SetSize(width int) {
	m.width = width
	w := width - 20
	if w < 20 {
		w = 20
	}
	if w > 60 {
		w = 60
	}
	m.input.Width = w
}

// Results returns the current matches, best first.
func (m SearchModel) Results() []model.Event {
	return m.results
}

// Chosen returns the picked event after enter.
func (m SearchModel) Chosen() (model.Event, bool) {
	if m.chosen == nil {
		return model.Event{}, false
	}
	return *m.chosen, true
}

// Cancelled reports whether the prompt was dismissed with esc.
func (m SearchModel) Cancelled() bool {
	return m.cancelled
}

// Update handles input while the prompt is visible.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.cancelled = true
			m.Close()
			return m, nil
		case "enter":
			if m.selected < len(m.results) {
				e := m.results[m.selected]
				m.chosen = &e
			}
			m.Close()
			return m, nil
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.selected < len(m.results)-1 {
				m.selected++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

func (m *SearchModel) filter() {
	m.selected = 0
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.results = nil
		return
	}

	titles := make([]string, len(m.events))
	for i, e := range m.events {
		titles[i] = e.Title
	}
	matches := fuzzy.Find(query, titles)
	if len(matches) > maxSearchResults {
		matches = matches[:maxSearchResults]
	}
	m.results = make([]model.Event, 0, len(matches))
	for _, match := range matches {
		m.results = append(m.results, m.events[match.Index])
	}
}

// View renders the prompt and its matches.
func (m SearchModel) View() string {
	if !m.visible {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	itemStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)
	selStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Bold(true)
	yearStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Secondary)
	if len(m.results) == 0 && m.input.Value() != "" {
		b.WriteString(itemStyle.Faint(true).Render("no matches"))
	}
	for i, e := range m.results {
		style, marker := itemStyle, "  "
		if i == m.selected {
			style, marker = selStyle, "▸ "
		}
		line := style.Render(marker+truncate(e.Title, m.input.Width)) + " " + yearStyle.Render(e.YearLabel())
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Renderer.NewStyle().Faint(true).Render("[↑/↓] select  [Enter] jump  [Esc] cancel"))

	return m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Render(b.String())
}
