package pass

import (
	"math"

	"github.com/cwbudde/algo-matrixverb/dsp/filter/biquad"
)

// DefaultQ is the Q of a second-order Butterworth section.
const DefaultQ = math.Sqrt2 / 2

// LowpassRBJ returns the cookbook second-order lowpass at freq with quality
// factor q. Non-positive or non-finite q falls back to DefaultQ. A freq
// outside (0, Nyquist) yields zero coefficients.
func LowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := omega(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	if !(q > 0) || math.IsInf(q, 1) {
		q = DefaultQ
	}

	sin, cos := math.Sincos(w0)
	alpha := sin / (2 * q)
	a0 := 1 + alpha
	b := (1 - cos) / (2 * a0)

	return biquad.Coefficients{
		B0: b,
		B1: 2 * b,
		B2: b,
		A1: -2 * cos / a0,
		A2: (1 - alpha) / a0,
	}
}

// ButterworthLP returns a maximally flat lowpass of the given order as a
// cascade of (order+1)/2 sections, highest Q first. Odd orders end in a
// first-order section with B2 = A2 = 0.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, LowpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 == 1 {
		sections = append(sections, firstOrderLP(freq, sampleRate))
	}

	return sections
}

// butterworthQ is the Q of pole pair i of an order-n Butterworth prototype.
func butterworthQ(n, i int) float64 {
	return 1 / (2 * math.Sin(math.Pi*float64(2*i+1)/float64(2*n)))
}

// firstOrderLP is the bilinear-transformed one-pole lowpass.
func firstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	w0, ok := omega(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	k := math.Tan(w0 / 2)
	b := k / (1 + k)

	return biquad.Coefficients{B0: b, B1: b, A1: (k - 1) / (1 + k)}
}

// omega returns 2*pi*freq/sampleRate when freq lies strictly inside
// (0, sampleRate/2).
func omega(freq, sampleRate float64) (float64, bool) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 1) {
		return 0, false
	}

	if !(freq > 0) || freq >= sampleRate/2 {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}
