package categories

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// Sample returns the color of a fill at position t in [0, 1] along its
// gradient axis, blended in Lab space. Solid fills return their color.
// Unparseable colors fall back to the fill's primary color.
func Sample(f model.Fill, t float64) string {
	if f.Kind != model.FillGradient || len(f.Stops) == 0 {
		return f.Primary()
	}
	if t <= f.Stops[0].Offset {
		return f.Stops[0].Color
	}
	if last := f.Stops[len(f.Stops)-1]; t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(f.Stops); i++ {
		a, b := f.Stops[i-1], f.Stops[i]
		if t > b.Offset {
			continue
		}
		ca, errA := colorful.Hex(a.Color)
		cb, errB := colorful.Hex(b.Color)
		if errA != nil || errB != nil {
			return f.Primary()
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return ca.BlendLab(cb, (t-a.Offset)/span).Clamped().Hex()
	}
	return f.Stops[len(f.Stops)-1].Color
}

// Contrast picks black or white text for the given background.
func Contrast(background string) string {
	c, err := colorful.Hex(background)
	if err != nil {
		return "#ffffff"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// Valid reports whether s parses as a hex color.
func Valid(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}
