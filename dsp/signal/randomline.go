package signal

import (
	"fmt"
	"math"
	"math/rand"
)

// RandomLine is a linearly interpolated random control signal. A new
// target value in [min, max] is drawn freq times per second and the output
// ramps from the previous target to the new one over that period.
type RandomLine struct {
	sampleRate float64
	min, max   float64
	freq       float64
	inc        float64

	phase     float64
	cur, next float64 // normalized to [0, 1]
	rng       *rand.Rand
}

// NewRandomLine creates a random line in [min, max] at freq Hz. A nil rng
// uses a fixed seed so output is reproducible.
func NewRandomLine(sampleRate, min, max, freq float64, rng *rand.Rand) (*RandomLine, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("signal: random line sample rate must be > 0: %v", sampleRate)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	r := &RandomLine{
		sampleRate: sampleRate,
		rng:        rng,
		cur:        0.5,
	}
	r.next = r.rng.Float64()
	r.SetRange(min, max)
	r.SetFreq(freq)

	return r, nil
}

// SetRange changes the output range. min and max are swapped if reversed.
func (r *RandomLine) SetRange(min, max float64) {
	if min > max {
		min, max = max, min
	}
	r.min, r.max = min, max
}

// Range returns the current output range.
func (r *RandomLine) Range() (min, max float64) { return r.min, r.max }

// SetFreq sets the rate at which new random points are drawn. Negative or
// non-finite rates freeze the line at its current position.
func (r *RandomLine) SetFreq(freq float64) {
	if freq < 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		freq = 0
	}
	r.freq = freq
	r.inc = freq / r.sampleRate
}

// Freq returns the point rate in Hz.
func (r *RandomLine) Freq() float64 { return r.freq }

// Next advances one sample and returns the new value.
func (r *RandomLine) Next() float64 {
	r.phase += r.inc
	for r.phase >= 1 {
		r.phase--
		r.cur = r.next
		r.next = r.rng.Float64()
	}

	return r.Value()
}

// Value returns the current value without advancing.
func (r *RandomLine) Value() float64 {
	u := r.cur + (r.next-r.cur)*r.phase
	return r.min + (r.max-r.min)*u
}

// Reset restarts the line at the center of its range.
func (r *RandomLine) Reset() {
	r.phase = 0
	r.cur = 0.5
	r.next = r.rng.Float64()
}
