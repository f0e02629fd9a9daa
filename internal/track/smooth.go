package track

import "sort"

// SmoothElevation returns a copy of raw with a centered median filter applied
// to elevation. It dampens barometric noise before gradients are derived.
// Windows below 3 return an unfiltered copy; even windows grow by one.
func SmoothElevation(raw []RawPoint, window int) []RawPoint {
	out := make([]RawPoint, len(raw))
	copy(out, raw)

	if len(raw) < 3 || window < 3 {
		return out
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2

	buf := make([]float64, 0, window)
	for i := range raw {
		start := max(0, i-half)
		end := min(len(raw), i+half+1)

		buf = buf[:0]
		for j := start; j < end; j++ {
			buf = append(buf, raw[j].Elevation)
		}
		out[i].Elevation = median(buf)
	}

	return out
}

// median sorts values in place.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)

	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}
