// Package metrics records analyzer activity as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultNamespace = "gpxan"
)

// Stage names used with ObserveStage.
const (
	StageParse     = "parse"
	StageDespike   = "despike"
	StageEnrich    = "enrich"
	StageIntervals = "intervals"
	StagePlan      = "plan"
)

// Manager owns the analyzer's collectors and the registry they live in.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         *prometheus.Registry

	tracksAnalyzed prometheus.Counter
	pointsEnriched prometheus.Counter
	pointsSkipped  prometheus.Counter
	pointsSpiked   prometheus.Counter
	trackDistance  prometheus.Histogram
	stageDuration  *prometheus.HistogramVec
	planOutcomes   *prometheus.CounterVec
}

// NewManager builds a Manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.tracksAnalyzed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "tracks_analyzed_total",
		Help:        "Tracks run through the analytics pipeline.",
		ConstLabels: m.constLabels,
	})
	m.pointsEnriched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "points_enriched_total",
		Help:        "Track points enriched with distance and gradient.",
		ConstLabels: m.constLabels,
	})
	m.pointsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "points_skipped_total",
		Help:        "Fixes dropped at ingestion for invalid coordinates.",
		ConstLabels: m.constLabels,
	})
	m.pointsSpiked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "points_despiked_total",
		Help:        "Fixes removed by the spike filter.",
		ConstLabels: m.constLabels,
	})
	m.trackDistance = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Name:        "track_distance_meters",
		Help:        "Total distance of analyzed tracks.",
		Buckets:     prometheus.ExponentialBuckets(1000, 2, 9), // 1 km .. 256 km
		ConstLabels: m.constLabels,
	})
	m.stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Name:        "stage_duration_seconds",
		Help:        "Time spent per pipeline stage.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"stage"})
	m.planOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "plan_outcomes_total",
		Help:        "Pace plan requests by outcome.",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.registry.MustRegister(
		m.tracksAnalyzed,
		m.pointsEnriched,
		m.pointsSkipped,
		m.pointsSpiked,
		m.trackDistance,
		m.stageDuration,
		m.planOutcomes,
	)
	return m
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// RecordTrack counts one analyzed track.
func (m *Manager) RecordTrack(points, skipped int, distanceMeters float64) {
	m.tracksAnalyzed.Inc()
	m.pointsEnriched.Add(float64(points))
	m.pointsSkipped.Add(float64(skipped))
	m.trackDistance.Observe(distanceMeters)
}

// RecordDespiked counts fixes removed by the spike filter.
func (m *Manager) RecordDespiked(removed int) {
	m.pointsSpiked.Add(float64(removed))
}

// ObserveStage records how long a pipeline stage took.
func (m *Manager) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordPlanOutcome counts a pace plan result such as "ok" or "no_data".
func (m *Manager) RecordPlanOutcome(outcome string) {
	m.planOutcomes.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes all metrics to path in the node exporter textfile
// collector format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
