// Package pace projects per-kilometer pace over a track for a finish-time
// or flat-terrain goal, adjusting each leg for its net elevation change.
package pace

import (
	"math"

	"github.com/planbiir/gpxanalyzer/internal/track"
)

const (
	legMeters = 1000.0

	// minTotalKm keeps the base pace finite on near-zero-length tracks.
	minTotalKm = 0.001

	// PartialLegThresholdKm marks legs shorter than this as partial. It sits
	// just under 1 km to absorb rounding at kilometer boundaries.
	PartialLegThresholdKm = 0.999
)

// Goal is what the runner is aiming for. A positive TargetSeconds takes
// precedence over FlatPace.
type Goal struct {
	TargetSeconds float64 // finish time for the whole track
	FlatPace      string  // "ss", "mm:ss" or "hh:mm:ss" per km on flat ground
}

// GoalFromClock builds a target-duration goal from clock components.
func GoalFromClock(hours, minutes, seconds int) Goal {
	return Goal{TargetSeconds: float64(hours*3600 + minutes*60 + seconds)}
}

// Leg is one planned kilometer, or the trailing remainder
type Leg struct {
	DistanceKm           float64 `json:"distance_km"`
	ElevationDeltaMeters float64 `json:"elevation_delta_m"`
	PaceSecondsPerKm     float64 `json:"pace_s_per_km"`
	IsPartial            bool    `json:"is_partial"`
	LegTimeSeconds       float64 `json:"leg_time_s"`
}

// Plan is the projected pace over a whole track
type Plan struct {
	Legs                 []Leg   `json:"legs"`
	TotalTimeSeconds     float64 `json:"total_time_s"`
	TotalDistanceKm      float64 `json:"total_distance_km"`
	BasePaceSecondsPerKm float64 `json:"base_pace_s_per_km"`
}

// PlanPace splits the track into kilometer legs and projects the time for
// each from the goal's base pace plus sensitivity seconds per meter of net
// elevation change. It returns ErrNoData for an empty track and
// ErrInsufficientInput when the goal yields no positive base pace.
func PlanPace(points []track.Point, goal Goal, sensitivity Sensitivity) (Plan, error) {
	if len(points) == 0 {
		return Plan{}, ErrNoData
	}

	totalMeters := track.TotalDistance(points)
	if !(totalMeters > 0) || math.IsInf(totalMeters, 1) {
		totalMeters = 0
	}
	totalKm := math.Max(minTotalKm, totalMeters/1000)

	base, err := basePace(goal, totalKm)
	if err != nil {
		return Plan{}, err
	}

	legCount := int(math.Ceil(totalMeters / legMeters))
	plan := Plan{
		Legs:                 make([]Leg, 0, legCount),
		BasePaceSecondsPerKm: base,
	}

	sampler := track.NewSampler(points)
	startEle := sampler.At(0)
	for k := 0; k < legCount; k++ {
		start := float64(k) * legMeters
		end := math.Min(float64(k+1)*legMeters, totalMeters)
		length := end - start
		if length <= 0 {
			continue
		}

		distKm := length / 1000
		endEle := sampler.At(end)
		delta := endEle - startEle
		startEle = endEle
		legTime := base*distKm + delta*float64(sensitivity)

		plan.Legs = append(plan.Legs, Leg{
			DistanceKm:           distKm,
			ElevationDeltaMeters: delta,
			PaceSecondsPerKm:     legTime / distKm,
			IsPartial:            distKm < PartialLegThresholdKm,
			LegTimeSeconds:       legTime,
		})
		plan.TotalTimeSeconds += legTime
		plan.TotalDistanceKm += distKm
	}

	return plan, nil
}

// basePace resolves the goal to seconds per kilometer.
func basePace(goal Goal, totalKm float64) (float64, error) {
	if goal.TargetSeconds > 0 && !math.IsInf(goal.TargetSeconds, 1) {
		return goal.TargetSeconds / totalKm, nil
	}
	if goal.FlatPace == "" {
		return 0, ErrInsufficientInput
	}

	flat, err := ParsePace(goal.FlatPace)
	if err != nil || flat <= 0 {
		return 0, ErrInsufficientInput
	}
	return flat, nil
}
