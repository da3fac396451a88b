package layout

import "github.com/Dicklesworthstone/timeline_viewer/pkg/model"

// IntervalLevel picks a label interval for year widths up to MaxWidth.
type IntervalLevel struct {
	MaxWidth float64
	Interval int
}

// YearLabel is one tick on the year axis.
type YearLabel struct {
	Year int
	X    float64
}

// LabelInterval returns the first level whose MaxWidth admits scale, or 1.
func LabelInterval(scale float64, levels []IntervalLevel) int {
	for _, lvl := range levels {
		if scale <= lvl.MaxWidth && lvl.Interval > 0 {
			return lvl.Interval
		}
	}
	return 1
}

// Condensed reports whether the axis should use the compact label style.
func Condensed(scale, threshold float64, interval int) bool {
	return scale <= threshold || interval > 1
}

// YearLabels lists the ticks to draw. Boundary years are always labelled.
// Intervals of five or more snap to round years (1910, 1920); smaller ones
// count from the first year.
func YearLabels(yr model.YearRange, scale float64, levels []IntervalLevel) []YearLabel {
	if !yr.Valid || scale <= 0 {
		return nil
	}

	interval := LabelInterval(scale, levels)
	rounded := interval >= 5

	var out []YearLabel
	for year := yr.Min; year <= yr.Max; year++ {
		boundary := year == yr.Min || year == yr.Max
		var matches bool
		if rounded {
			matches = mod(year, interval) == 0
		} else {
			matches = (year-yr.Min)%interval == 0
		}
		if !boundary && !matches {
			continue
		}
		out = append(out, YearLabel{Year: year, X: YearToX(float64(year), yr.Min, scale)})
	}
	return out
}

// mod is a floored modulo so negative (BCE) years align too.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
