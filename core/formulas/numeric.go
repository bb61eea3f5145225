// Package formulas - Subscription pricing formulas
// Pure functions only. Degenerate input is handled with sentinels, never errors.
package formulas

import "math"

func clamp(value, lo, hi float64) float64 {
	return math.Min(math.Max(value, lo), hi)
}

// SafeNumber returns fallback when v is NaN or infinite
func SafeNumber(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
