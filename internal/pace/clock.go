package pace

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParsePace converts "ss", "mm:ss" or "hh:mm:ss" into seconds. Any empty,
// non-numeric, negative or non-finite token is an error.
func ParsePace(s string) (float64, error) {
	tokens := strings.Split(strings.TrimSpace(s), ":")
	if len(tokens) > 3 {
		return 0, fmt.Errorf("%w: %q has more than three fields", ErrInvalidPace, s)
	}

	total := 0.0
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPace, s)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPace, s)
		}
		total = total*60 + v
	}

	return total, nil
}

// FormatSeconds renders a duration as mm:ss, or h:mm:ss from one hour up.
// Non-finite and non-positive values render as "--:--".
func FormatSeconds(sec float64) string {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec <= 0 {
		return "--:--"
	}

	s := int64(math.Round(sec))
	hh := s / 3600
	mm := (s % 3600) / 60
	ss := s % 60

	if hh > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hh, mm, ss)
	}
	return fmt.Sprintf("%02d:%02d", mm, ss)
}
