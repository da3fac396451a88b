package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type binding struct {
	keys string
	desc string
}

type helpSection struct {
	name     string
	bindings []binding
}

var helpSections = []helpSection{
	{"NAVIGATION", []binding{
		{"h/←  l/→", "Pan a quarter screen"},
		{"H  L", "Jump to start / end"},
		{"wheel", "Pan"},
		{"drag", "Pan with the pointer"},
		{"minimap", "Click or drag to navigate"},
	}},
	{"ZOOM", []binding{
		{"+  -", "Zoom in / out"},
		{"ctrl+wheel", "Zoom around the pointer"},
		{"minimap edge", "Drag to resize the view"},
	}},
	{"EVENTS", []binding{
		{"/", "Search titles"},
		{"tab  shift+tab", "Select next / previous"},
		{"enter / click", "Open details"},
		{"[  ]", "Previous / next in details"},
		{"y", "Copy first link"},
	}},
	{"VIEW", []binding{
		{"?", "Toggle this help"},
		{"esc  q", "Close / quit"},
	}},
}

const (
	helpKeyWidth   = 16
	helpTwoColumns = 84 // overlay width needed to place sections side by side
)

// HelpOverlayModel lists the key and mouse bindings, including the current
// category hotkeys.
type HelpOverlayModel struct {
	visible    bool
	width      int
	height     int
	theme      Theme
	categories []string
}

func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{theme: theme}
}

// Toggle flips visibility.
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetCategories records the categories bound to the digit keys, in order.
func (m *HelpOverlayModel) SetCategories(names []string) {
	m.categories = append(m.categories[:0], names...)
}

// Update closes the overlay on any key.
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && m.visible {
		m.visible = false
	}
	return m, nil
}

func (m HelpOverlayModel) sections() []helpSection {
	cats := helpSection{name: "CATEGORIES"}
	for i, c := range m.categories {
		if i == 9 {
			break
		}
		cats.bindings = append(cats.bindings, binding{fmt.Sprint(i + 1), "Toggle " + c})
	}
	cats.bindings = append(cats.bindings, binding{"0", "Show all"})

	out := make([]helpSection, 0, len(helpSections)+1)
	out = append(out, helpSections[:2]...)
	out = append(out, cats)
	return append(out, helpSections[2:]...)
}

func (m HelpOverlayModel) renderSection(sec helpSection) string {
	r := m.theme.Renderer
	head := r.NewStyle().Bold(true).Foreground(m.theme.Secondary)
	key := r.NewStyle().Foreground(m.theme.Primary).Width(helpKeyWidth)
	desc := r.NewStyle().Foreground(m.theme.Subtext)

	lines := []string{head.Render(sec.name)}
	for _, b := range sec.bindings {
		lines = append(lines, "  "+key.Render(b.keys)+desc.Render(truncate(b.desc, 28)))
	}
	return strings.Join(lines, "\n")
}

func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}
	r := m.theme.Renderer

	secs := m.sections()
	rendered := make([]string, len(secs))
	for i, s := range secs {
		rendered[i] = m.renderSection(s)
	}

	var body string
	if m.width >= helpTwoColumns {
		half := (len(rendered) + 1) / 2
		col := r.NewStyle().MarginRight(4)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			col.Render(strings.Join(rendered[:half], "\n\n")),
			strings.Join(rendered[half:], "\n\n"))
	} else {
		body = strings.Join(rendered, "\n\n")
	}

	title := r.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("Timeline Help")
	hint := r.NewStyle().Faint(true).Italic(true).Render("any key closes")

	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Render(title + "\n\n" + body + "\n\n" + hint)
}
