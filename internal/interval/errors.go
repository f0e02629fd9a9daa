package interval

import "errors"

// ErrInvalidInterval is returned for a window width that is not a positive,
// finite number of meters, or is so narrow the table would exceed MaxWindows.
var ErrInvalidInterval = errors.New("interval width must be positive")
