// Package clean removes GPS spikes from a raw track before it is enriched.
// A single bad fix adds two long phantom legs, which inflate distance and
// produce absurd local gradients.
package clean

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/planbiir/gpxanalyzer/internal/geo"
	"github.com/planbiir/gpxanalyzer/internal/track"
)

// Filter returns a copy of raw without fixes that are reached and left at an
// impossible speed, or that form a boomerang spike. The first and last fixes
// are always kept.
func Filter(raw []track.RawPoint, config Config) ([]track.RawPoint, Stats) {
	stats := Stats{OriginalPoints: len(raw)}

	limit := config.MaxSpeed
	if limit > 0 {
		stats.ActivityType = "manual"
	} else {
		stats.ActivityType, limit, stats.P95Speed = detectActivityType(raw)
	}
	stats.SpeedLimit = limit

	if len(raw) <= 2 {
		out := make([]track.RawPoint, len(raw))
		copy(out, raw)
		stats.FinalPoints = len(out)
		return out, stats
	}

	out := make([]track.RawPoint, 0, len(raw))
	out = append(out, raw[0]) // Always keep first point

	for i := 1; i < len(raw)-1; i++ {
		prev := out[len(out)-1]
		curr := raw[i]
		next := raw[i+1]

		if isSpike(prev, curr, next, limit, config) {
			continue
		}
		out = append(out, curr)
	}
	out = append(out, raw[len(raw)-1])

	stats.FinalPoints = len(out)
	stats.PointsRemoved = len(raw) - len(out)

	removedPercent := float64(stats.PointsRemoved) / float64(len(raw)) * 100
	if removedPercent > config.MaxRemovedPercent {
		out = make([]track.RawPoint, len(raw))
		copy(out, raw)
		stats.FinalPoints = len(out)
		stats.Reverted = true
	}

	return out, stats
}

// isSpike reports whether curr is a bad fix between the last kept fix and
// the next one. A leg is suspect when it is too fast, or too long when the
// timestamps cannot tell. Only a fix with both legs suspect is dropped, so
// the neighbors of a spike survive.
func isSpike(prev, curr, next track.RawPoint, limit float64, config Config) bool {
	distToPrev := distance3D(prev, curr)
	distToNext := distance3D(curr, next)

	if legSuspect(distToPrev, curr.Time.Sub(prev.Time).Seconds(), limit, config) &&
		legSuspect(distToNext, next.Time.Sub(curr.Time).Seconds(), limit, config) {
		return true
	}

	// Boomerang: out and back to nearly the same place with a sharp turn
	if distToPrev > config.SpikeLegMeters && distToNext > config.SpikeLegMeters {
		base := geo.Distance(prev.Coordinate(), next.Coordinate())
		if base < config.SpikeBaseMeters && turnAngle(prev, curr, next) > config.SpikeTurnDegrees {
			return true
		}
	}

	return false
}

func legSuspect(dist, seconds, limit float64, config Config) bool {
	if seconds > 0 {
		return dist/seconds > limit
	}
	return dist > config.TeleportMeters
}

// detectActivityType classifies the track by its P95 speed and picks a speed
// limit for it
func detectActivityType(points []track.RawPoint) (string, float64, float64) {
	speeds := calculateAllSpeeds(points)
	if len(speeds) == 0 {
		return "unknown", 12.0, 0.0
	}

	sort.Float64s(speeds)
	p95 := stat.Quantile(0.95, stat.Empirical, speeds, nil)

	switch {
	case p95 <= 8.0: // 28.8 km/h
		return "running/hiking", 12.0, p95 // 43.2 km/h
	case p95 <= 20.0: // 72 km/h
		return "cycling", 30.0, p95 // 108 km/h
	default:
		return "high-speed", 50.0, p95 // 180 km/h
	}
}

// calculateAllSpeeds computes speeds between consecutive timestamped points
func calculateAllSpeeds(points []track.RawPoint) []float64 {
	var speeds []float64
	for i := 1; i < len(points); i++ {
		if points[i].Time.IsZero() || points[i-1].Time.IsZero() {
			continue
		}
		dt := points[i].Time.Sub(points[i-1].Time).Seconds()
		if dt <= 0 {
			continue
		}
		speed := distance3D(points[i-1], points[i]) / dt
		if speed > 0 && speed < 100 { // reasonable bounds
			speeds = append(speeds, speed)
		}
	}
	return speeds
}

// turnAngle computes the change of heading at p2, 0..180 degrees
func turnAngle(p1, p2, p3 track.RawPoint) float64 {
	b1 := geo.Bearing(p1.Coordinate(), p2.Coordinate())
	b2 := geo.Bearing(p2.Coordinate(), p3.Coordinate())

	angle := math.Abs(b2 - b1)
	if angle > 180.0 {
		angle = 360.0 - angle
	}
	return angle
}

func distance3D(a, b track.RawPoint) float64 {
	return math.Hypot(geo.Distance(a.Coordinate(), b.Coordinate()), b.Elevation-a.Elevation)
}
