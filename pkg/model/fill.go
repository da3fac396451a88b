package model

import (
	"fmt"
	"strings"
)

// FillKind distinguishes a solid color from a gradient.
type FillKind int

const (
	FillSolid FillKind = iota
	FillGradient
)

// ColorStop is one stop of a linear gradient. Offset is in [0,1].
type ColorStop struct {
	Color  string  `json:"color"`
	Offset float64 `json:"offset"`
}

// Fill is the paint for an event block: either a single hex color or an
// ordered list of gradient stops. Renderers consume it directly, so nothing
// ever has to parse a rendered color string back into stops.
type Fill struct {
	Kind  FillKind    `json:"kind"`
	Color string      `json:"color,omitempty"`
	Stops []ColorStop `json:"stops,omitempty"`
	Angle float64     `json:"angle,omitempty"` // degrees, CSS convention
}

// Solid returns a single-color fill.
func Solid(color string) Fill {
	return Fill{Kind: FillSolid, Color: color}
}

// Gradient returns a gradient fill with evenly spaced stops. With fewer than
// two colors it degrades to a solid fill.
func Gradient(angle float64, colors ...string) Fill {
	switch len(colors) {
	case 0:
		return Fill{}
	case 1:
		return Solid(colors[0])
	}
	stops := make([]ColorStop, len(colors))
	last := float64(len(colors) - 1)
	for i, c := range colors {
		stops[i] = ColorStop{Color: c, Offset: float64(i) / last}
	}
	return Fill{Kind: FillGradient, Stops: stops, Angle: angle}
}

// IsZero reports whether the fill carries no paint at all.
func (f Fill) IsZero() bool {
	return f.Kind == FillSolid && f.Color == "" && len(f.Stops) == 0
}

// Primary returns the first color of the fill.
func (f Fill) Primary() string {
	if f.Kind == FillGradient && len(f.Stops) > 0 {
		return f.Stops[0].Color
	}
	return f.Color
}

// Colors returns every color the fill uses, in stop order.
func (f Fill) Colors() []string {
	if f.Kind == FillGradient {
		out := make([]string, len(f.Stops))
		for i, s := range f.Stops {
			out[i] = s.Color
		}
		return out
	}
	if f.Color == "" {
		return nil
	}
	return []string{f.Color}
}

// Equal compares two fills stop by stop.
func (f Fill) Equal(o Fill) bool {
	if f.Kind != o.Kind || f.Color != o.Color || f.Angle != o.Angle || len(f.Stops) != len(o.Stops) {
		return false
	}
	for i := range f.Stops {
		if f.Stops[i] != o.Stops[i] {
			return false
		}
	}
	return true
}

// CSS renders the fill as a CSS background value.
func (f Fill) CSS() string {
	if f.Kind != FillGradient {
		return f.Color
	}
	parts := make([]string, len(f.Stops))
	for i, s := range f.Stops {
		parts[i] = fmt.Sprintf("%s %g%%", s.Color, s.Offset*100)
	}
	return fmt.Sprintf("linear-gradient(%gdeg, %s)", f.Angle, strings.Join(parts, ", "))
}
