// Package utils contains small helpers shared by the spatial and joint packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= epsilon
}

// FloatPtr returns a pointer to the given value. Useful for optional parameters.
func FloatPtr(v float64) *float64 {
	return &v
}

// ClampF64 restricts a value to the closed interval [lo, hi].
func ClampF64(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(value, hi))
}
