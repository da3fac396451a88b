package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgDark      = lipgloss.Color("#1E1F29")
	ColorBgSubtle    = lipgloss.Color("#363949")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	// Primary accent colors
	ColorPrimary   = lipgloss.Color("#BD93F9")
	ColorSecondary = lipgloss.Color("#6272A4")
	ColorInfo      = lipgloss.Color("#8BE9FD")
	ColorSuccess   = lipgloss.Color("#50FA7B")
	ColorWarning   = lipgloss.Color("#FFB86C")
	ColorDanger    = lipgloss.Color("#FF5555")
)

// Theme bundles a renderer with the adaptive colors every view draws with.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
}

// DefaultTheme returns the stock theme bound to r. A nil renderer uses the
// process default.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: string(ColorPrimary)},
		Secondary: lipgloss.AdaptiveColor{Light: "#5A5A8A", Dark: string(ColorSecondary)},
		Subtext:   lipgloss.AdaptiveColor{Light: "#555555", Dark: string(ColorSubtext)},
		Border:    lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: string(ColorBgHighlight)},
		Highlight: lipgloss.AdaptiveColor{Light: "#DDDDEE", Dark: string(ColorBgHighlight)},
		Warning:   lipgloss.AdaptiveColor{Light: "#B35C00", Dark: string(ColorWarning)},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CATEGORY BADGES
// ══════════════════════════════════════════════════════════════════════════════

// RenderCategoryBadge renders a numbered category chip. Hidden categories
// are drawn struck through on a muted background.
func RenderCategoryBadge(t Theme, n int, name, color string, hidden bool) string {
	label := name
	if n > 0 && n <= 9 {
		label = fmt.Sprintf("%d %s", n, name)
	}
	style := t.Renderer.NewStyle().Padding(0, 1)
	if hidden {
		return style.Foreground(ColorMuted).Background(ColorBgSubtle).Strikethrough(true).Render(label)
	}
	return style.Foreground(lipgloss.Color(contrastText(color))).Background(lipgloss.Color(color)).Render(label)
}

// RenderZoomBar shows where the scale sits between its limits.
func RenderZoomBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(t.Primary).Render(bar)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
