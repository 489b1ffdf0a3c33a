//go:build linux

package util

import (
	"math"
	"strconv"
)

// SafeDiv returns n/d, or 0 when d is too close to zero to be meaningful.
func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// ClampMin0 returns x, or 0 when x is negative or NaN.
func ClampMin0(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	return x
}

// ClampPercent bounds x to [0,100]; NaN becomes 0.
func ClampPercent(x float64) float64 {
	if x > 100 {
		return 100
	}
	return ClampMin0(x)
}

// FmtFloat formats f with one decimal place, the precision ps prints for %CPU and %MEM.
func FmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
