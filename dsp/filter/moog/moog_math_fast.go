//go:build fastmath

package moog

import (
	"github.com/meko-christian/algo-approx"
)

// tanhLimit bounds the exponent so FastExp stays in range; tanh is ±1
// to double precision beyond it.
const tanhLimit = 20.0

// ladderTanh computes tanh(x) = 1 - 2/(e^(2x)+1) using fast approximation.
func ladderTanh(x float64) float64 {
	if x > tanhLimit {
		return 1
	}

	if x < -tanhLimit {
		return -1
	}

	return 1 - 2/(approx.FastExp(2*x)+1)
}
