package utils

import "math"

// Round2 rounds a monetary amount to 2 decimal places. Totals are rounded
// once, at the end of a computation, so per-addition rounding error cannot
// compound.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
