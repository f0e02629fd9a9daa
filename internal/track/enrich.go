package track

import "github.com/planbiir/gpxanalyzer/internal/geo"

// Enrich computes distance from previous, cumulative distance and gradient
// for every point. The input is left untouched; an empty input gives an
// empty result.
func Enrich(raw []RawPoint) []Point {
	points := make([]Point, len(raw))
	if len(raw) == 0 {
		return points
	}

	points[0] = Point{RawPoint: raw[0]}

	cumulative := 0.0
	for i := 1; i < len(raw); i++ {
		d := geo.Distance(raw[i-1].Coordinate(), raw[i].Coordinate())
		cumulative += d

		gradient := 0.0
		if d > 0 {
			gradient = (raw[i].Elevation - raw[i-1].Elevation) / d
		}

		points[i] = Point{
			RawPoint:             raw[i],
			DistanceFromPrevious: d,
			CumulativeDistance:   cumulative,
			Gradient:             gradient,
		}
	}

	return points
}
