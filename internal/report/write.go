package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/planbiir/gpxanalyzer/internal/pace"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return nil
}

// WriteText writes the summary, gradient table and pace plan for a terminal.
func WriteText(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	s := r.Summary
	fmt.Fprintf(bw, "\n📊 Track Summary:\n")
	fmt.Fprintf(bw, "%s\n", rule)
	if r.Source != "" {
		fmt.Fprintf(bw, "🏷️  Track: %s\n", r.Source)
	}
	fmt.Fprintf(bw, "📍 Points: %d", s.Points)
	if r.Skipped > 0 {
		fmt.Fprintf(bw, " (%d invalid skipped)", r.Skipped)
	}
	fmt.Fprintf(bw, "\n")
	if c := r.Cleaning; c != nil {
		if c.Reverted {
			fmt.Fprintf(bw, "🧹 Spike filter: %d flagged, kept all (limit %.1f m/s)\n", c.PointsRemoved, c.SpeedLimit)
		} else {
			fmt.Fprintf(bw, "🧹 Spike filter: %d removed (%s, limit %.1f m/s)\n", c.PointsRemoved, c.ActivityType, c.SpeedLimit)
		}
	}
	fmt.Fprintf(bw, "📏 Distance: %.2f km\n", s.TotalDistance/1000)
	fmt.Fprintf(bw, "⛰️  Elevation: %.0f → %.0f m (+%.0f / -%.0f m)\n",
		s.MinElevation, s.MaxElevation, s.TotalAscent, s.TotalDescent)
	fmt.Fprintf(bw, "📐 Gradient: max %.1f%%, min %.1f%%\n", s.MaxGradient*100, s.MinGradient*100)
	if s.Duration > 0 {
		fmt.Fprintf(bw, "⏱️  Recorded Time: %s\n", pace.FormatSeconds(s.Duration.Seconds()))
	}

	fmt.Fprintf(bw, "\n📈 Gradient by %.0f m:\n", r.IntervalMeters)
	fmt.Fprintf(bw, "%s\n", rule)
	switch r.IntervalStatus {
	case StatusOK:
		fmt.Fprintf(bw, "%10s %10s %10s\n", "from km", "to km", "gradient")
		for _, row := range r.Intervals {
			fmt.Fprintf(bw, "%10.2f %10.2f %9.1f%%\n", row.From/1000, row.To/1000, row.GradientPercent())
		}
	case StatusInsufficientInput:
		fmt.Fprintf(bw, "   Interval must be a positive distance\n")
	default:
		fmt.Fprintf(bw, "   Not enough points for a gradient table\n")
	}

	fmt.Fprintf(bw, "\n🏃 Pace Plan:\n")
	fmt.Fprintf(bw, "%s\n", rule)
	switch r.PlanStatus {
	case StatusOK:
		p := r.Plan
		fmt.Fprintf(bw, "   Base pace %s /km, sensitivity %.2f s/m\n",
			pace.FormatSeconds(p.BasePaceSecondsPerKm), float64(r.Sensitivity))
		fmt.Fprintf(bw, "%4s %8s %9s %8s %9s\n", "km", "dist", "Δele m", "pace", "time")
		for i, leg := range p.Legs {
			marker := ""
			if leg.IsPartial {
				marker = " *"
			}
			fmt.Fprintf(bw, "%4d %8.2f %+9.1f %8s %9s%s\n", i+1, leg.DistanceKm, leg.ElevationDeltaMeters,
				pace.FormatSeconds(leg.PaceSecondsPerKm), pace.FormatSeconds(leg.LegTimeSeconds), marker)
		}
		fmt.Fprintf(bw, "   Total: %.2f km in %s\n", p.TotalDistanceKm, pace.FormatSeconds(p.TotalTimeSeconds))
	case StatusInsufficientInput:
		fmt.Fprintf(bw, "   Set a target time (-target 1:45:00) or flat pace (-pace 5:00) to plan\n")
	default:
		fmt.Fprintf(bw, "   No track points to plan over\n")
	}
	fmt.Fprintf(bw, "%s\n", rule)

	return bw.Flush()
}
