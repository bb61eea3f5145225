package formulas

import "math"

// CubicOut eases t in [0,1] with a decelerating cubic curve
func CubicOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// TweenValue interpolates between two numbers for metric animations
func TweenValue(from, to, progress float64) float64 {
	eased := CubicOut(clamp(progress, 0, 1))
	return from + (to-from)*eased
}
