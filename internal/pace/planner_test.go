package pace_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/planbiir/gpxanalyzer/internal/pace"
	"github.com/planbiir/gpxanalyzer/internal/track"
)

// profile builds enriched points from cumulative distances and elevations.
func profile(cum, ele []float64) []track.Point {
	points := make([]track.Point, len(cum))
	for i := range cum {
		points[i].CumulativeDistance = cum[i]
		points[i].Elevation = ele[i]
		if i > 0 {
			points[i].DistanceFromPrevious = cum[i] - cum[i-1]
		}
	}
	return points
}

// flat returns a straight, level track of the given length sampled every step meters.
func flat(totalMeters, step float64) []track.Point {
	var cum, ele []float64
	for d := 0.0; d < totalMeters; d += step {
		cum = append(cum, d)
		ele = append(ele, 250)
	}
	cum = append(cum, totalMeters)
	ele = append(ele, 250)
	return profile(cum, ele)
}

func TestPlanPace(t *testing.T) {
	Convey("Given a flat 2500 m track", t, func() {
		points := flat(2500, 100)

		Convey("When planning with a 05:00 flat pace", func() {
			plan, err := pace.PlanPace(points, pace.Goal{FlatPace: "05:00"}, pace.SensitivityMedium)

			Convey("Then it yields two full legs and one half leg", func() {
				So(err, ShouldBeNil)
				want := []pace.Leg{
					{DistanceKm: 1, PaceSecondsPerKm: 300, LegTimeSeconds: 300},
					{DistanceKm: 1, PaceSecondsPerKm: 300, LegTimeSeconds: 300},
					{DistanceKm: 0.5, PaceSecondsPerKm: 300, LegTimeSeconds: 150, IsPartial: true},
				}
				diff := cmp.Diff(want, plan.Legs, cmpopts.EquateApprox(0, 1e-9))
				So(diff, ShouldBeEmpty)
				So(plan.TotalTimeSeconds, ShouldAlmostEqual, 750, 1e-9)
				So(plan.TotalDistanceKm, ShouldAlmostEqual, 2.5, 1e-9)
				So(plan.BasePaceSecondsPerKm, ShouldEqual, 300.0)
			})
		})

		Convey("When both a target and a flat pace are given", func() {
			plan, err := pace.PlanPace(points, pace.Goal{TargetSeconds: 1000, FlatPace: "05:00"}, pace.SensitivityOff)

			Convey("Then the target duration wins", func() {
				So(err, ShouldBeNil)
				So(plan.BasePaceSecondsPerKm, ShouldAlmostEqual, 400, 1e-9)
				So(plan.TotalTimeSeconds, ShouldAlmostEqual, 1000, 1e-9)
			})
		})
	})

	Convey("Given a flat 10 km track and a one hour target", t, func() {
		points := flat(10000, 250)
		plan, err := pace.PlanPace(points, pace.GoalFromClock(1, 0, 0), pace.SensitivityHigh)

		Convey("Then every leg runs at 360 s/km", func() {
			So(err, ShouldBeNil)
			So(plan.BasePaceSecondsPerKm, ShouldAlmostEqual, 360, 1e-9)
			So(len(plan.Legs), ShouldEqual, 10)
			for _, leg := range plan.Legs {
				So(leg.PaceSecondsPerKm, ShouldAlmostEqual, 360, 1e-9)
				So(leg.IsPartial, ShouldBeFalse)
			}
			So(plan.TotalTimeSeconds, ShouldAlmostEqual, 3600, 1e-6)
		})
	})

	Convey("Given a track climbing then descending", t, func() {
		// 0-1000 m: +50 m, 1000-1500 m: -20 m, sampled unevenly
		points := profile(
			[]float64{0, 300, 1200, 1500},
			[]float64{100, 115, 146, 130},
		)

		Convey("When planning", func() {
			plan, err := pace.PlanPace(points, pace.Goal{FlatPace: "5:00"}, pace.SensitivityMedium)
			So(err, ShouldBeNil)
			So(len(plan.Legs), ShouldEqual, 2)

			Convey("Then leg elevation comes from interpolation at kilometer marks", func() {
				// elevation at 1000 m: 115 + 700/900*31
				at1000 := 115 + 700.0/900.0*31
				So(plan.Legs[0].ElevationDeltaMeters, ShouldAlmostEqual, at1000-100, 1e-9)
				So(plan.Legs[1].ElevationDeltaMeters, ShouldAlmostEqual, 130-at1000, 1e-9)
				So(plan.Legs[0].LegTimeSeconds, ShouldAlmostEqual, 300+(at1000-100)*0.2, 1e-9)
				So(plan.Legs[1].IsPartial, ShouldBeTrue)
				So(plan.Legs[1].PaceSecondsPerKm, ShouldAlmostEqual, plan.Legs[1].LegTimeSeconds/0.5, 1e-9)
			})
		})

		Convey("When sensitivity increases", func() {
			low, err := pace.PlanPace(points, pace.Goal{FlatPace: "5:00"}, pace.SensitivityLow)
			So(err, ShouldBeNil)
			high, err := pace.PlanPace(points, pace.Goal{FlatPace: "5:00"}, pace.SensitivityHigh)
			So(err, ShouldBeNil)

			Convey("Then climbs get slower and descents faster", func() {
				So(high.Legs[0].LegTimeSeconds, ShouldBeGreaterThan, low.Legs[0].LegTimeSeconds)
				So(high.Legs[1].LegTimeSeconds, ShouldBeLessThan, low.Legs[1].LegTimeSeconds)
			})
		})
	})

	Convey("Given edge-case inputs", t, func() {
		Convey("An empty track has no plan", func() {
			_, err := pace.PlanPace(nil, pace.Goal{FlatPace: "5:00"}, pace.DefaultSensitivity)
			So(errors.Is(err, pace.ErrNoData), ShouldBeTrue)
		})

		Convey("A missing goal is insufficient input", func() {
			_, err := pace.PlanPace(flat(1000, 100), pace.Goal{}, pace.DefaultSensitivity)
			So(errors.Is(err, pace.ErrInsufficientInput), ShouldBeTrue)
		})

		Convey("An unparseable flat pace is insufficient input", func() {
			for _, p := range []string{"abc", "-5:00", "0", "1:2:3:4"} {
				_, err := pace.PlanPace(flat(1000, 100), pace.Goal{FlatPace: p, TargetSeconds: -10}, pace.DefaultSensitivity)
				So(errors.Is(err, pace.ErrInsufficientInput), ShouldBeTrue)
			}
		})

		Convey("A single-point track plans zero legs with a finite base pace", func() {
			plan, err := pace.PlanPace(profile([]float64{0}, []float64{10}), pace.Goal{TargetSeconds: 600}, pace.DefaultSensitivity)
			So(err, ShouldBeNil)
			So(plan.Legs, ShouldBeEmpty)
			So(plan.TotalTimeSeconds, ShouldEqual, 0.0)
			So(math.IsInf(plan.BasePaceSecondsPerKm, 0), ShouldBeFalse)
			So(plan.BasePaceSecondsPerKm, ShouldAlmostEqual, 600000, 1e-6)
		})

		Convey("An exact kilometer multiple has no trailing partial leg", func() {
			plan, err := pace.PlanPace(flat(3000, 500), pace.Goal{FlatPace: "4:00"}, pace.DefaultSensitivity)
			So(err, ShouldBeNil)
			So(len(plan.Legs), ShouldEqual, 3)
			So(plan.Legs[2].IsPartial, ShouldBeFalse)
		})
	})
}
