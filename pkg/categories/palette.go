package categories

import (
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// GradientAngle is the direction of multi-category fills, in degrees.
const GradientAngle = 135

// Palette maps categories to colors by their position in the sorted
// category list, cycling through the configured colors.
type Palette struct {
	colors       map[string]string
	order        []string
	defaultColor string
}

// NewPalette assigns colors to the given sorted categories.
func NewPalette(categories, colors []string, defaultColor string) *Palette {
	p := &Palette{
		colors:       make(map[string]string, len(categories)),
		order:        append([]string(nil), categories...),
		defaultColor: defaultColor,
	}
	for i, c := range categories {
		if len(colors) == 0 {
			p.colors[c] = defaultColor
			continue
		}
		p.colors[c] = colors[i%len(colors)]
	}
	return p
}

// Categories returns the categories in palette order.
func (p *Palette) Categories() []string {
	return p.order
}

// Default is the color used for events without a known category.
func (p *Palette) Default() string {
	return p.defaultColor
}

// Color returns a category's color, or the default for unknown names.
func (p *Palette) Color(category string) string {
	if c, ok := p.colors[category]; ok {
		return c
	}
	return p.defaultColor
}

// Index is the category's position in palette order, or -1.
func (p *Palette) Index(category string) int {
	for i, c := range p.order {
		if c == category {
			return i
		}
	}
	return -1
}

// FillFor computes an event's fill. Events with no categories get the
// default color; several categories whose colors differ get a gradient with
// evenly spaced stops in category order.
func (p *Palette) FillFor(e model.Event) model.Fill {
	if len(e.Categories) == 0 {
		return model.Solid(p.defaultColor)
	}

	var colors []string
	seen := make(map[string]bool, len(e.Categories))
	for _, c := range e.Categories {
		color := p.Color(c)
		if seen[color] {
			continue
		}
		seen[color] = true
		colors = append(colors, color)
	}
	return model.Gradient(GradientAngle, colors...)
}
