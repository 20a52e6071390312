// Package numeric provides scalar rescaling helpers.
package numeric

import "math"

// Remap linearly maps value from [fromMin, fromMax] onto [toMin, toMax].
// A degenerate source range returns toMin.
func Remap(value, fromMin, fromMax, toMin, toMax float64) float64 {
	if fromMax == fromMin {
		return toMin
	}
	return toMin + (toMax-toMin)*(value-fromMin)/(fromMax-fromMin)
}

// RemapFromZero is Remap with both ranges starting at zero.
func RemapFromZero(value, fromMax, toMax float64) float64 {
	return Remap(value, 0, fromMax, 0, toMax)
}

// Clamp limits value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	return math.Min(math.Max(value, lo), hi)
}

// RoundTo rounds value to the nearest multiple of step.
func RoundTo(value, step float64) float64 {
	if step <= 0 {
		return value
	}
	inverse := 1 / step
	return math.Round(value*inverse) / inverse
}
