// Package track turns raw GPS fixes into the analytics-ready point sequence
// and answers elevation and summary queries against it.
package track

import (
	"time"

	"github.com/planbiir/gpxanalyzer/internal/geo"
)

// RawPoint is a GPS fix as extracted from a track file
type RawPoint struct {
	Lat       float64
	Lon       float64
	Elevation float64   // meters, 0 when the source had none
	Time      time.Time // zero when the source had none
}

// Coordinate returns the position of the fix.
func (p RawPoint) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: p.Lat, Lon: p.Lon}
}

// Point is an enriched track point
type Point struct {
	RawPoint

	DistanceFromPrevious float64 `json:"distance_from_previous_m"`
	CumulativeDistance   float64 `json:"cumulative_distance_m"`
	Gradient             float64 `json:"gradient"` // rise over run
}

// Summary describes a whole enriched track
type Summary struct {
	Points        int           `json:"points"`
	TotalDistance float64       `json:"total_distance_m"`
	TotalAscent   float64       `json:"total_ascent_m"`
	TotalDescent  float64       `json:"total_descent_m"`
	MinElevation  float64       `json:"min_elevation_m"`
	MaxElevation  float64       `json:"max_elevation_m"`
	MaxGradient   float64       `json:"max_gradient"`
	MinGradient   float64       `json:"min_gradient"`
	Duration      time.Duration `json:"duration_ns"`
}

// TotalDistance returns the cumulative distance of the last point, or 0.
func TotalDistance(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].CumulativeDistance
}
