package pace

import "errors"

// Sentinel outcomes of this package. Callers branch on them with errors.Is.
var (
	// ErrNoData means the track has no points, so there is nothing to plan.
	ErrNoData = errors.New("no track data")
	// ErrInsufficientInput means the goal does not resolve to a positive pace.
	ErrInsufficientInput = errors.New("insufficient input: need a positive target duration or flat pace")
	// ErrInvalidPace is returned by ParsePace for malformed pace strings.
	ErrInvalidPace = errors.New("invalid pace")
	// ErrUnknownSensitivity is returned by ParseSensitivity for unknown presets.
	ErrUnknownSensitivity = errors.New("unknown sensitivity")
)
