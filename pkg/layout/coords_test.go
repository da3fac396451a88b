package layout

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestYearToXRoundTrip(t *testing.T) {
	scales := []float64{0.5, 1, 28, 50, 73.3, 200, 1000}
	minYears := []int{-500, 0, 1865}

	for _, s := range scales {
		for _, minYear := range minYears {
			for year := minYear; year < minYear+300; year += 7 {
				x := YearToX(float64(year), minYear, s)
				back := XToYear(x, minYear, s)
				// Round-trip error expressed in pixels must stay under one.
				if errPx := math.Abs(back-float64(year)) * s; errPx >= 1 {
					t.Errorf("scale %g minYear %d: year %d -> x %g -> %g (error %gpx)", s, minYear, year, x, back, errPx)
				}
			}
		}
	}
}

func TestYearToXMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for year := 1800; year <= 2000; year++ {
		x := YearToX(float64(year), 1800, 37.5)
		if x <= prev {
			t.Fatalf("YearToX not increasing at %d: %g <= %g", year, x, prev)
		}
		prev = x
	}
}

func TestXToYearZeroScale(t *testing.T) {
	if got := XToYear(100, 1900, 0); got != 1900 {
		t.Errorf("XToYear with zero scale = %g, want 1900", got)
	}
	if got := XToYear(100, 1900, -3); got != 1900 {
		t.Errorf("XToYear with negative scale = %g, want 1900", got)
	}
}

func TestContentAndEventWidth(t *testing.T) {
	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"content 1900-1999 at 50", ContentWidth(1900, 1999, 50), 5000},
		{"content single year", ContentWidth(1950, 1950, 28), 28},
		{"content inverted", ContentWidth(2000, 1900, 50), 0},
		{"content zero scale", ContentWidth(1900, 1999, 0), 0},
		{"event single year", EventWidth(1954, 1954, 50), 50},
		{"event decade", EventWidth(1900, 1909, 20), 200},
		{"event inverted", EventWidth(1910, 1900, 20), 0},
		{"inset", Inset(50, 10), 40},
		{"inset floors at zero", Inset(8, 10), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !scalar.EqualWithinAbs(tt.got, tt.expected, 1e-9) {
				t.Errorf("got %g, want %g", tt.got, tt.expected)
			}
		})
	}
}
