package interval

import (
	"errors"
	"math"
	"testing"

	"github.com/planbiir/gpxanalyzer/internal/track"
)

// profile builds enriched points from cumulative distances and elevations.
func profile(cum, ele []float64) []track.Point {
	points := make([]track.Point, len(cum))
	for i := range cum {
		points[i].CumulativeDistance = cum[i]
		points[i].Elevation = ele[i]
		if i > 0 {
			d := cum[i] - cum[i-1]
			points[i].DistanceFromPrevious = d
			if d > 0 {
				points[i].Gradient = (ele[i] - ele[i-1]) / d
			}
		}
	}
	return points
}

func TestAggregateInvalidInterval(t *testing.T) {
	points := profile([]float64{0, 100}, []float64{0, 10})

	for _, width := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		rows, err := Aggregate(points, width)
		if !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("width %v: expected ErrInvalidInterval, got %v", width, err)
		}
		if rows != nil {
			t.Errorf("width %v: expected nil rows, got %v", width, rows)
		}
	}
}

func TestAggregateRejectsTinyInterval(t *testing.T) {
	points := profile([]float64{0, 5000, 10000}, []float64{0, 10, 0})

	for _, width := range []float64{1e-300, 1e-3} {
		rows, err := Aggregate(points, width)
		if !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("width %v: expected ErrInvalidInterval, got %v", width, err)
		}
		if rows != nil {
			t.Errorf("width %v: expected nil rows, got %d rows", width, len(rows))
		}
	}

	// exactly MaxWindows windows is still accepted
	rows, err := Aggregate(profile([]float64{0, 1e6}, []float64{0, 0}), 1)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rows) != int(MaxWindows) {
		t.Errorf("Expected %d rows, got %d", int(MaxWindows), len(rows))
	}
}

func TestAggregateTooFewPoints(t *testing.T) {
	for _, points := range [][]track.Point{nil, profile([]float64{0}, []float64{5})} {
		rows, err := Aggregate(points, 100)
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if rows == nil || len(rows) != 0 {
			t.Errorf("Expected empty non-nil table, got %v", rows)
		}
	}
}

func TestAggregateZeroLengthTrack(t *testing.T) {
	rows, err := Aggregate(profile([]float64{0, 0, 0}, []float64{1, 2, 3}), 100)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows for a stationary track, got %d", len(rows))
	}
}

func TestAggregateWeightsBySegmentOverlap(t *testing.T) {
	// segment 1: 0-150 m at +10%, segment 2: 150-250 m at -5%
	points := profile([]float64{0, 150, 250}, []float64{0, 15, 10})

	rows, err := Aggregate(points, 100)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	want := []Row{
		{From: 0, To: 100, Distance: 100, AverageGradient: 0.1},
		{From: 100, To: 200, Distance: 100, AverageGradient: (0.1*50 - 0.05*50) / 100},
		{From: 200, To: 250, Distance: 50, AverageGradient: -0.05},
	}
	if len(rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d: %+v", len(want), len(rows), rows)
	}
	for i := range want {
		got := rows[i]
		if got.From != want[i].From || got.To != want[i].To {
			t.Errorf("row %d: bounds %v-%v, want %v-%v", i, got.From, got.To, want[i].From, want[i].To)
		}
		if math.Abs(got.Distance-want[i].Distance) > 1e-9 {
			t.Errorf("row %d: distance %v, want %v", i, got.Distance, want[i].Distance)
		}
		if math.Abs(got.AverageGradient-want[i].AverageGradient) > 1e-12 {
			t.Errorf("row %d: gradient %v, want %v", i, got.AverageGradient, want[i].AverageGradient)
		}
	}

	if math.Abs(rows[1].GradientPercent()-2.5) > 1e-9 {
		t.Errorf("Expected 2.5%%, got %v", rows[1].GradientPercent())
	}
}

func TestAggregateNotArithmeticMean(t *testing.T) {
	// A long gentle segment and a short steep one: the mean must be
	// distance weighted, not (0.01 + 0.5) / 2.
	points := profile([]float64{0, 900, 1000}, []float64{0, 9, 59})

	rows, err := Aggregate(points, 1000)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if math.Abs(rows[0].AverageGradient-0.059) > 1e-12 {
		t.Errorf("Expected weighted gradient 0.059, got %v", rows[0].AverageGradient)
	}
}

func TestAggregateCoversWholeTrack(t *testing.T) {
	cum := []float64{0}
	ele := []float64{100}
	for i := 1; i < 200; i++ {
		step := 7.3 + float64(i%11)*3.1
		cum = append(cum, cum[i-1]+step)
		ele = append(ele, 100+20*math.Sin(float64(i)/10))
	}
	points := profile(cum, ele)
	total := track.TotalDistance(points)

	for _, width := range []float64{50, 100, 333.3, 1000, total, 2 * total} {
		rows, err := Aggregate(points, width)
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}

		covered := 0.0
		for i, r := range rows {
			covered += r.Distance
			if r.Distance > r.To-r.From+1e-9 {
				t.Errorf("width %v row %d: covered %v exceeds bounds %v-%v", width, i, r.Distance, r.From, r.To)
			}
			if i > 0 && r.From != rows[i-1].To {
				t.Errorf("width %v row %d: gap between %v and %v", width, i, rows[i-1].To, r.From)
			}
		}
		if math.Abs(covered-total) > 1e-6 {
			t.Errorf("width %v: covered %v, track is %v", width, covered, total)
		}
		if last := rows[len(rows)-1]; last.To != total {
			t.Errorf("width %v: last row ends at %v, want %v", width, last.To, total)
		}
	}
}

func TestAggregateExactMultipleHasNoTrailingRow(t *testing.T) {
	points := profile([]float64{0, 500, 1000}, []float64{0, 5, 5})

	rows, err := Aggregate(points, 500)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[1].AverageGradient != 0 {
		t.Errorf("Expected flat second window, got %v", rows[1].AverageGradient)
	}
}
