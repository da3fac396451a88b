// Package layout turns year ranges into pixel geometry: the coordinate
// mapper, greedy lane assignment, year labels and vertical placement.
//
// Everything here is pure. Callers pass the scale factor (pixels per year)
// and year origin explicitly; nothing reads rendered output.
package layout

// YearToX maps a year to its horizontal offset from the start of the content.
func YearToX(year float64, minYear int, scale float64) float64 {
	return (year - float64(minYear)) * scale
}

// XToYear is the inverse of YearToX. It returns minYear when scale is not
// positive rather than dividing by zero.
func XToYear(x float64, minYear int, scale float64) float64 {
	if scale <= 0 {
		return float64(minYear)
	}
	return float64(minYear) + x/scale
}

// ContentWidth is the full scrollable width for a year span, counting both
// boundary years. Degenerate inputs yield 0.
func ContentWidth(minYear, maxYear int, scale float64) float64 {
	if scale <= 0 || maxYear < minYear {
		return 0
	}
	return float64(maxYear-minYear+1) * scale
}

// EventWidth is the unpadded width of an inclusive year span.
func EventWidth(startYear, endYear int, scale float64) float64 {
	if scale <= 0 || endYear < startYear {
		return 0
	}
	return float64(endYear-startYear+1) * scale
}

// Inset subtracts the visual gap left between neighbouring blocks in a lane,
// never going below zero.
func Inset(width, inset float64) float64 {
	if w := width - inset; w > 0 {
		return w
	}
	return 0
}
