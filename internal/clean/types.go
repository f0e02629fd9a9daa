package clean

// Config holds spike filter parameters
type Config struct {
	// Speed threshold
	MaxSpeed float64 // m/s - maximum plausible speed (auto-detected if 0)

	// Jump guard for fixes without timestamps
	TeleportMeters float64 // meters

	// Boomerang detection: two long legs out and back to nearly the same place
	SpikeLegMeters   float64 // meters - minimum length of both legs
	SpikeBaseMeters  float64 // meters - maximum gap between the neighbors
	SpikeTurnDegrees float64 // degrees - minimum turn at the suspect fix

	// Safety limit
	MaxRemovedPercent float64 // never remove >X% of points
}

// DefaultConfig returns production-tested configuration
func DefaultConfig() Config {
	return Config{
		MaxSpeed:          0,     // auto-detect based on activity type
		TeleportMeters:    120.0, // jump guard for missing timestamps
		SpikeLegMeters:    120.0,
		SpikeBaseMeters:   40.0,
		SpikeTurnDegrees:  100.0,
		MaxRemovedPercent: 20.0, // safety: never remove >20% of points
	}
}

// Stats describes what the filter did
type Stats struct {
	OriginalPoints int `json:"original_points"`
	FinalPoints    int `json:"final_points"`
	PointsRemoved  int `json:"points_removed"`

	// Reverted is set when the removal exceeded MaxRemovedPercent and the
	// input was returned unchanged.
	Reverted bool `json:"reverted"`

	// Activity detection
	ActivityType string  `json:"activity_type"`
	SpeedLimit   float64 `json:"speed_limit_ms"`
	P95Speed     float64 `json:"p95_speed_ms"`
}
