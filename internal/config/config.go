// Package config defines analyzer configuration and how it is loaded.
package config

import (
	"fmt"
	"strings"

	"github.com/planbiir/gpxanalyzer/internal/pace"
)

// Config holds analysis parameters
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// IntervalMeters is the window width of the gradient table.
	IntervalMeters float64 `koanf:"interval_meters"`

	// Sensitivity is a preset name (off, low, medium, high) or seconds per
	// meter of net elevation change.
	Sensitivity string `koanf:"sensitivity"`

	// TargetDuration is the finish time, "hh:mm:ss" style. Takes precedence
	// over FlatPace when set.
	TargetDuration string `koanf:"target_duration"`

	// FlatPace is the per-km pace on level ground, "mm:ss" style.
	FlatPace string `koanf:"flat_pace"`

	// ElevationWindow is the median filter width applied before enrichment;
	// below 3 disables smoothing.
	ElevationWindow int `koanf:"elevation_window"`

	// Despike removes GPS spikes before enrichment.
	Despike bool `koanf:"despike"`

	// MaxSpeed caps plausible speed for the spike filter in m/s; 0 picks a
	// limit from the detected activity.
	MaxSpeed float64 `koanf:"max_speed"`

	// MetricsFile, when set, receives Prometheus metrics in textfile format.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		IntervalMeters: 1000, // same as the per-km pace legs
		Sensitivity:    "medium",
	}
}

// Validate checks ranges and that the sensitivity resolves.
func (c *Config) Validate() error {
	if !(c.IntervalMeters > 0) {
		return fmt.Errorf("%w: interval_meters must be positive, got %v", ErrInvalidConfig, c.IntervalMeters)
	}
	if c.MaxSpeed < 0 {
		return fmt.Errorf("%w: max_speed must not be negative, got %v", ErrInvalidConfig, c.MaxSpeed)
	}
	if c.ElevationWindow < 0 {
		return fmt.Errorf("%w: elevation_window must not be negative, got %d", ErrInvalidConfig, c.ElevationWindow)
	}
	if _, err := pace.ParseSensitivity(c.Sensitivity); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// Goal builds the pace goal. An unparseable target duration is ignored so
// the planner can fall back to the flat pace or report insufficient input.
func (c *Config) Goal() pace.Goal {
	goal := pace.Goal{FlatPace: strings.TrimSpace(c.FlatPace)}
	if c.TargetDuration != "" {
		if secs, err := pace.ParsePace(c.TargetDuration); err == nil {
			goal.TargetSeconds = secs
		}
	}
	return goal
}

// SensitivityFactor resolves the configured sensitivity, falling back to the
// default for values Validate would reject.
func (c *Config) SensitivityFactor() pace.Sensitivity {
	s, err := pace.ParseSensitivity(c.Sensitivity)
	if err != nil {
		return pace.DefaultSensitivity
	}
	return s
}
