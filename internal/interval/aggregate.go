// Package interval builds gradient-by-distance tables from an enriched track.
package interval

import (
	"fmt"
	"math"

	"github.com/planbiir/gpxanalyzer/internal/track"
)

// MaxWindows bounds the table size; narrower widths are rejected.
const MaxWindows = 1e6

// Row is one window of a gradient table
type Row struct {
	From            float64 `json:"from_m"`
	To              float64 `json:"to_m"`
	Distance        float64 `json:"distance_m"` // covered inside [From, To)
	AverageGradient float64 `json:"average_gradient"`
}

// GradientPercent returns the average gradient as a percentage.
func (r Row) GradientPercent() float64 {
	return r.AverageGradient * 100
}

// Aggregate partitions the track into fixed windows of intervalMeters along
// cumulative distance and returns the overlap-weighted mean gradient of each.
// Tracks with fewer than two points give an empty table.
func Aggregate(points []track.Point, intervalMeters float64) ([]Row, error) {
	if !(intervalMeters > 0) || math.IsInf(intervalMeters, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, intervalMeters)
	}
	if len(points) < 2 {
		return []Row{}, nil
	}

	total := track.TotalDistance(points)
	if !(total > 0) || math.IsInf(total, 1) {
		return []Row{}, nil
	}
	windows := math.Ceil(total / intervalMeters)
	if windows > MaxWindows {
		return nil, fmt.Errorf("%w: %v m gives %.0f windows over %.0f m", ErrInvalidInterval, intervalMeters, windows, total)
	}
	rows := make([]Row, 0, int(windows))

	// first segment that may still overlap the current window
	seg := 1
	for k := 0; ; k++ {
		start := float64(k) * intervalMeters
		if start >= total {
			break
		}
		end := math.Min(float64(k+1)*intervalMeters, total)

		for seg < len(points) && points[seg].CumulativeDistance <= start {
			seg++
		}

		var weighted, covered float64
		for i := seg; i < len(points) && points[i-1].CumulativeDistance < end; i++ {
			overlap := math.Min(points[i].CumulativeDistance, end) - math.Max(points[i-1].CumulativeDistance, start)
			if overlap > 0 {
				weighted += points[i].Gradient * overlap
				covered += overlap
			}
		}

		avg := 0.0
		if covered > 0 {
			avg = weighted / covered
		}

		rows = append(rows, Row{
			From:            start,
			To:              end,
			Distance:        covered,
			AverageGradient: avg,
		})
	}

	return rows, nil
}
