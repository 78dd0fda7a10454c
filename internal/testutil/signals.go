// Package testutil holds signal generators and comparison helpers shared by
// package tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
)

// DeterministicSine generates a sine wave starting at phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	w := 2 * math.Pi * freqHz / sampleRate

	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}

	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns a unit impulse at pos. Out-of-range positions give silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Interleave packs equally long channel slices into one frame-major buffer.
func Interleave(channels ...[]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}

	n := len(channels[0])
	out := make([]float64, n*len(channels))

	for c, ch := range channels {
		for i := 0; i < n && i < len(ch); i++ {
			out[i*len(channels)+c] = ch[i]
		}
	}

	return out
}

// Energy returns the sum of squares of x.
func Energy(x []float64) float64 {
	return vecmath.DotProduct(x, x)
}

// NonZeroCount returns the number of samples whose magnitude exceeds eps.
func NonZeroCount(x []float64, eps float64) int {
	n := 0

	for _, v := range x {
		if math.Abs(v) > eps {
			n++
		}
	}

	return n
}

// MaxStep returns the largest absolute difference between neighbouring
// samples.
func MaxStep(x []float64) float64 {
	var step float64
	for i := 1; i < len(x); i++ {
		step = math.Max(step, math.Abs(x[i]-x[i-1]))
	}

	return step
}
