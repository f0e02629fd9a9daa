// Package report runs the full analytics pipeline over one track and
// collects the results for presentation.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/planbiir/gpxanalyzer/internal/clean"
	"github.com/planbiir/gpxanalyzer/internal/gpx"
	"github.com/planbiir/gpxanalyzer/internal/interval"
	"github.com/planbiir/gpxanalyzer/internal/pace"
	"github.com/planbiir/gpxanalyzer/internal/track"
	"github.com/planbiir/gpxanalyzer/pkg/logger"
	"github.com/planbiir/gpxanalyzer/pkg/metrics"
)

// Status tells the presenter whether a section has content or why not.
type Status string

const (
	StatusOK                Status = "ok"
	StatusNoData            Status = "no_data"
	StatusInsufficientInput Status = "insufficient_input"
)

// Options configures one analysis run
type Options struct {
	IntervalMeters  float64
	Goal            pace.Goal
	Sensitivity     pace.Sensitivity
	ElevationWindow int // median filter width, < 3 disables

	Despike  bool
	MaxSpeed float64 // m/s for the spike filter, 0 auto-detects
}

// DefaultOptions returns options with a 1 km table and no goal.
func DefaultOptions() Options {
	return Options{
		IntervalMeters: 1000,
		Sensitivity:    pace.DefaultSensitivity,
	}
}

// Report is the outcome of analyzing a single track
type Report struct {
	ID          string           `json:"id"`
	Source      string           `json:"source,omitempty"`
	Skipped     int              `json:"skipped_points"`
	Summary     track.Summary    `json:"summary"`
	Sensitivity pace.Sensitivity `json:"sensitivity"`
	Cleaning    *clean.Stats     `json:"cleaning,omitempty"`

	Points []track.Point `json:"-"`

	IntervalMeters float64        `json:"interval_m"`
	Intervals      []interval.Row `json:"intervals"`
	IntervalStatus Status         `json:"interval_status"`

	Plan       *pace.Plan `json:"plan,omitempty"`
	PlanStatus Status     `json:"plan_status"`
}

// Analyzer runs the pipeline and reports to a logger and metrics manager.
type Analyzer struct {
	log     logger.Logger
	metrics *metrics.Manager
}

// New returns an Analyzer. A nil logger discards output and a nil manager
// disables metrics.
func New(log logger.Logger, m *metrics.Manager) *Analyzer {
	if log == nil {
		log = logger.Nop()
	}
	return &Analyzer{log: log, metrics: m}
}

// Analyze smooths (optionally) and enriches raw, then builds the interval
// table and the pace plan concurrently. Core outcomes such as an empty track
// or a missing goal are reported through the status fields; the returned
// error is non-nil only when ctx is done.
func (a *Analyzer) Analyze(ctx context.Context, raw []track.RawPoint, opts Options) (Report, error) {
	return a.analyze(ctx, raw, opts, Report{})
}

// AnalyzeFile analyzes every point of a parsed GPX file and records the
// file name and skipped fix count in the report.
func (a *Analyzer) AnalyzeFile(ctx context.Context, f *gpx.File, opts Options) (Report, error) {
	return a.analyze(ctx, f.FlattenPoints(), opts, Report{Source: f.Name, Skipped: f.Skipped})
}

func (a *Analyzer) analyze(ctx context.Context, raw []track.RawPoint, opts Options, r Report) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	begin := time.Now()
	r.ID = uuid.NewString()
	r.Sensitivity = opts.Sensitivity
	r.IntervalMeters = opts.IntervalMeters

	if opts.Despike {
		start := time.Now()
		config := clean.DefaultConfig()
		config.MaxSpeed = opts.MaxSpeed

		var stats clean.Stats
		raw, stats = clean.Filter(raw, config)
		r.Cleaning = &stats
		a.observe(metrics.StageDespike, start)

		if stats.Reverted {
			a.log.Warn(ctx, "spike filter reverted, too many fixes flagged",
				logger.String("report_id", r.ID),
				logger.Int("flagged", stats.PointsRemoved),
			)
		} else if a.metrics != nil {
			a.metrics.RecordDespiked(stats.PointsRemoved)
		}
	}

	start := time.Now()
	if opts.ElevationWindow >= 3 {
		raw = track.SmoothElevation(raw, opts.ElevationWindow)
	}
	r.Points = track.Enrich(raw)
	r.Summary = track.Summarize(r.Points)
	a.observe(metrics.StageEnrich, start)

	a.log.Debug(ctx, "track enriched",
		logger.String("report_id", r.ID),
		logger.Int("points", r.Summary.Points),
		logger.Float64("distance_m", r.Summary.TotalDistance),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		defer a.observe(metrics.StageIntervals, start)

		rows, err := interval.Aggregate(r.Points, opts.IntervalMeters)
		switch {
		case errors.Is(err, interval.ErrInvalidInterval):
			a.log.Warn(gctx, "gradient table skipped", logger.Error(err))
			r.IntervalStatus = StatusInsufficientInput
		case err != nil:
			return err
		case len(rows) == 0:
			r.Intervals = rows
			r.IntervalStatus = StatusNoData
		default:
			r.Intervals = rows
			r.IntervalStatus = StatusOK
		}
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		defer a.observe(metrics.StagePlan, start)

		plan, err := pace.PlanPace(r.Points, opts.Goal, opts.Sensitivity)
		switch {
		case errors.Is(err, pace.ErrNoData):
			r.PlanStatus = StatusNoData
		case errors.Is(err, pace.ErrInsufficientInput):
			a.log.Info(gctx, "no pace goal, plan skipped")
			r.PlanStatus = StatusInsufficientInput
		case err != nil:
			return err
		default:
			r.Plan = &plan
			r.PlanStatus = StatusOK
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	if a.metrics != nil {
		a.metrics.RecordTrack(r.Summary.Points, r.Skipped, r.Summary.TotalDistance)
		a.metrics.RecordPlanOutcome(string(r.PlanStatus))
	}

	a.log.Info(ctx, "track analyzed",
		logger.String("report_id", r.ID),
		logger.String("interval_status", string(r.IntervalStatus)),
		logger.String("plan_status", string(r.PlanStatus)),
		logger.Duration("elapsed", time.Since(begin)),
	)

	return r, nil
}

func (a *Analyzer) observe(stage string, start time.Time) {
	if a.metrics != nil {
		a.metrics.ObserveStage(stage, time.Since(start))
	}
}
