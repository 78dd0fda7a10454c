package core

import (
	"cmp"
	"math"
)

// denormalLimit is the magnitude below which FlushDenormals returns zero.
const denormalLimit = 1e-30

// Clamp limits value to [lo, hi]. Swapped bounds are reordered; NaN passes
// through.
func Clamp(value, lo, hi float64) float64 {
	return clamp(value, lo, hi)
}

// Clamp01 limits value to [0, 1] and maps NaN to 0.
func Clamp01(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}

	return clamp(value, 0, 1)
}

// ClampInt limits value to [lo, hi]. Swapped bounds are reordered.
func ClampInt(value, lo, hi int) int {
	return clamp(value, lo, hi)
}

func clamp[T cmp.Ordered](v, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}

	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FlushDenormals returns 0 for magnitudes below 1e-30 so feedback tails
// decay to exact silence instead of lingering in subnormal range.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalLimit {
		return 0
	}

	return x
}

// DBToLinear converts a level in dB to an amplitude factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}
