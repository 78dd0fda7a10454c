//go:build !fastmath

package moog

import "math"

// ladderTanh is the stage saturator.
func ladderTanh(x float64) float64 {
	return math.Tanh(x)
}
