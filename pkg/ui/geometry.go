package ui

import "math"

// minimapRows is the height of the overview strip in terminal rows.
const minimapRows = 3

// geometry maps terminal cells to timeline pixels. One column stands for
// cellWidth pixels; lane 0 is the bottom lane row.
type geometry struct {
	width     int
	height    int
	cellWidth float64
	lanes     int
}

func (g geometry) headerRow() int   { return 0 }
func (g geometry) categoryRow() int { return 1 }
func (g geometry) lanesTop() int    { return 3 }
func (g geometry) axisRow() int     { return g.lanesTop() + g.lanes }
func (g geometry) labelRow() int    { return g.axisRow() + 1 }
func (g geometry) minimapTop() int  { return g.labelRow() + 2 }
func (g geometry) footerRow() int   { return g.minimapTop() + minimapRows + 1 }

// pixelWidth is the viewport width in timeline pixels.
func (g geometry) pixelWidth() float64 {
	return float64(g.width) * g.cellWidth
}

// colToX returns the pixel at the middle of column col.
func (g geometry) colToX(col int) float64 {
	return (float64(col) + 0.5) * g.cellWidth
}

// xToCol returns the column containing pixel x.
func (g geometry) xToCol(x float64) int {
	return int(math.Floor(x / g.cellWidth))
}

// span converts a pixel interval to the columns it touches. Every non-empty
// interval covers at least one column.
func (g geometry) span(left, width float64) (int, int) {
	c0 := g.xToCol(left)
	c1 := int(math.Ceil((left + width) / g.cellWidth))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	return c0, c1
}

// laneAt returns the lane drawn on screen row y.
func (g geometry) laneAt(y int) (int, bool) {
	if y < g.lanesTop() || y >= g.axisRow() {
		return 0, false
	}
	return g.lanes - 1 - (y - g.lanesTop()), true
}

// laneRow returns the screen row of a lane.
func (g geometry) laneRow(lane int) int {
	return g.lanesTop() + g.lanes - 1 - lane
}

// inMinimap reports whether screen row y is part of the overview strip.
func (g geometry) inMinimap(y int) bool {
	return y >= g.minimapTop() && y < g.minimapTop()+minimapRows
}

// minimapY converts a strip row to a minimap pixel y at the row's middle.
func (g geometry) minimapY(y int, height float64) float64 {
	return (float64(y-g.minimapTop()) + 0.5) / minimapRows * height
}

// minimapRow converts a minimap pixel y to a strip row offset.
func minimapRow(y, height float64) int {
	if height <= 0 {
		return 0
	}
	r := int(y / height * minimapRows)
	if r < 0 {
		return 0
	}
	if r >= minimapRows {
		return minimapRows - 1
	}
	return r
}
