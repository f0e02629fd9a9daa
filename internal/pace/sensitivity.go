package pace

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Sensitivity is the pace adjustment in seconds per meter of net elevation
// change over a leg.
type Sensitivity float64

// Named presets.
const (
	SensitivityOff    Sensitivity = 0
	SensitivityLow    Sensitivity = 0.1
	SensitivityMedium Sensitivity = 0.2
	SensitivityHigh   Sensitivity = 0.4

	DefaultSensitivity = SensitivityMedium
)

var presets = map[string]Sensitivity{
	"off":    SensitivityOff,
	"low":    SensitivityLow,
	"medium": SensitivityMedium,
	"high":   SensitivityHigh,
}

// ParseSensitivity resolves a preset name (case-insensitive) or a plain
// number. An empty string yields DefaultSensitivity.
func ParseSensitivity(s string) (Sensitivity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return DefaultSensitivity, nil
	}
	if v, ok := presets[name]; ok {
		return v, nil
	}

	v, err := strconv.ParseFloat(name, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSensitivity, s, strings.Join(PresetNames(), ", "))
	}
	return Sensitivity(v), nil
}

// PresetNames lists the preset names in ascending factor order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return presets[names[i]] < presets[names[j]]
	})
	return names
}
