package track

import "sort"

// ElevationAt returns the elevation at the given cumulative distance by
// linear interpolation between the bracketing points. Distances before the
// start or past the end clamp to the first or last elevation.
func ElevationAt(points []Point, distance float64) float64 {
	n := len(points)
	if n == 0 {
		return 0
	}
	if distance <= points[0].CumulativeDistance {
		return points[0].Elevation
	}
	if distance >= points[n-1].CumulativeDistance {
		return points[n-1].Elevation
	}

	// first point at or past distance; always >= 1 after the clamps above
	i := sort.Search(n, func(i int) bool {
		return points[i].CumulativeDistance >= distance
	})
	return interpolate(points, i, distance)
}

// Sampler answers ElevationAt queries with a forward-only cursor, so a run of
// non-decreasing distances costs one pass over the track.
type Sampler struct {
	points []Point
	idx    int
	last   float64
}

// NewSampler returns a sampler positioned at the start of points.
func NewSampler(points []Point) *Sampler {
	return &Sampler{points: points, idx: 1}
}

// At returns the same value as ElevationAt(points, distance).
func (s *Sampler) At(distance float64) float64 {
	n := len(s.points)
	if n == 0 {
		return 0
	}
	if distance <= s.points[0].CumulativeDistance {
		return s.points[0].Elevation
	}
	if distance >= s.points[n-1].CumulativeDistance {
		return s.points[n-1].Elevation
	}
	if distance < s.last {
		return ElevationAt(s.points, distance)
	}
	s.last = distance

	for s.idx < n && s.points[s.idx].CumulativeDistance < distance {
		s.idx++
	}
	return interpolate(s.points, s.idx, distance)
}

// interpolate evaluates segment [i-1, i] at distance.
func interpolate(points []Point, i int, distance float64) float64 {
	prev := points[i-1]
	next := points[i]

	span := next.CumulativeDistance - prev.CumulativeDistance
	if span <= 0 {
		return next.Elevation
	}

	ratio := (distance - prev.CumulativeDistance) / span
	return prev.Elevation + ratio*(next.Elevation-prev.Elevation)
}
