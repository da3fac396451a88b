package layout

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LaneStats summarises how a layout filled its lanes.
type LaneStats struct {
	Counts   []int   // events per lane index, up to the capacity
	Mean     float64 // mean events per active lane
	StdDev   float64 // spread across active lanes
	Coverage float64 // fraction of content width covered by lane 0
	Degraded int
}

// Stats computes per-lane occupancy for a layout result.
func Stats(res Result, capacity int) LaneStats {
	if capacity <= 0 {
		capacity = DefaultLaneCapacity
	}
	s := LaneStats{Counts: make([]int, capacity), Degraded: len(res.Degraded)}

	var baseWidths []float64
	for _, p := range res.Positions {
		if p.LaneIndex >= 0 && p.LaneIndex < capacity {
			s.Counts[p.LaneIndex]++
		}
		if p.LaneIndex == 0 {
			baseWidths = append(baseWidths, p.Width)
		}
	}

	if res.ActiveLaneCount > 0 {
		active := make([]float64, res.ActiveLaneCount)
		for i := range active {
			active[i] = float64(s.Counts[i])
		}
		s.Mean, s.StdDev = stat.MeanStdDev(active, nil)
		if res.ActiveLaneCount == 1 {
			s.StdDev = 0
		}
	}
	if res.ContentWidth > 0 && len(baseWidths) > 0 {
		s.Coverage = floats.Sum(baseWidths) / res.ContentWidth
	}
	return s
}
