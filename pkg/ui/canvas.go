package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/categories"
)

// cell is one terminal cell of a rendered row.
type cell struct {
	ch    rune
	fg    string
	bg    string
	faint bool
	bold  bool
	under bool
}

// row is a fixed-width line of cells, flushed as runs of identical style.
type row []cell

func newRow(width int) row {
	r := make(row, width)
	for i := range r {
		r[i].ch = ' '
	}
	return r
}

func (r row) set(col int, c cell) {
	if col >= 0 && col < len(r) {
		r[col] = c
	}
}

// text writes s starting at col, clipped to the row. It returns the number
// of columns written.
func (r row) text(col int, s string, style cell) int {
	n := 0
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w != 1 {
			// wide runes would shift every later cell
			ch = '?'
		}
		if col+n >= len(r) {
			break
		}
		c := style
		c.ch = ch
		r.set(col+n, c)
		n++
	}
	return n
}

// overlay replaces the characters from col on, keeping each cell's style.
func (r row) overlay(col int, s string) {
	for _, ch := range s {
		if col >= len(r) {
			return
		}
		if runewidth.RuneWidth(ch) != 1 {
			ch = '?'
		}
		if col >= 0 {
			r[col].ch = ch
		}
		col++
	}
}

func (r row) render(t Theme) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(r); i++ {
		if i < len(r) && sameStyle(r[i], r[start]) {
			continue
		}
		var run strings.Builder
		for _, c := range r[start:i] {
			run.WriteRune(c.ch)
		}
		b.WriteString(styleFor(t, r[start]).Render(run.String()))
		start = i
	}
	return b.String()
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.faint == b.faint && a.bold == b.bold && a.under == b.under
}

func styleFor(t Theme, c cell) lipgloss.Style {
	s := t.Renderer.NewStyle()
	if c.fg != "" {
		s = s.Foreground(lipgloss.Color(c.fg))
	}
	if c.bg != "" {
		s = s.Background(lipgloss.Color(c.bg))
	}
	if c.faint {
		s = s.Faint(true)
	}
	if c.bold {
		s = s.Bold(true)
	}
	if c.under {
		s = s.Underline(true)
	}
	return s
}

func contrastText(bg string) string {
	return categories.Contrast(bg)
}

// truncate shortens s to fit width columns, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
