package track

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// Summarize reports totals and extremes of an enriched track. An empty track
// gives a zero Summary.
func Summarize(points []Point) Summary {
	n := len(points)
	if n == 0 {
		return Summary{}
	}

	elevations := make([]float64, n)
	for i, p := range points {
		elevations[i] = p.Elevation
	}

	s := Summary{
		Points:        n,
		TotalDistance: TotalDistance(points),
		MinElevation:  floats.Min(elevations),
		MaxElevation:  floats.Max(elevations),
	}

	if n >= 2 {
		// the first point carries no segment, so its zero gradient is skipped
		gradients := make([]float64, 0, n-1)
		for i := 1; i < n; i++ {
			delta := elevations[i] - elevations[i-1]
			if delta > 0 {
				s.TotalAscent += delta
			} else {
				s.TotalDescent -= delta
			}
			gradients = append(gradients, points[i].Gradient)
		}
		s.MaxGradient = floats.Max(gradients)
		s.MinGradient = floats.Min(gradients)
	}

	// elapsed time between the first and last timestamped fixes
	var first, last time.Time
	for _, p := range points {
		if p.Time.IsZero() {
			continue
		}
		if first.IsZero() {
			first = p.Time
		}
		last = p.Time
	}
	if !first.IsZero() {
		s.Duration = last.Sub(first)
	}

	return s
}
