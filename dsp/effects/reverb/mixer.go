package reverb

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
	"github.com/cwbudde/algo-matrixverb/dsp/interp"
)

const (
	earlyDirectGain = 2.0
	earlyTailGain   = 0.1
	lateDirectGain  = 0.5
	wetGain         = 0.25
)

// Mixer blends early reflections, the late tail and the dry signal.
type Mixer struct {
	depth   float64
	balance float64
	scratch []float64
}

// NewMixer returns a mixer with the given depth and balance, each clamped
// to [0, 1].
func NewMixer(depth, balance float64) *Mixer {
	m := &Mixer{}
	m.SetDepth(depth)
	m.SetBalance(balance)

	return m
}

// SetDepth sets the early (0) to late (1) blend.
func (m *Mixer) SetDepth(depth float64) { m.depth = core.Clamp01(depth) }

// SetBalance sets the dry (0) to wet (1) blend.
func (m *Mixer) SetBalance(balance float64) { m.balance = core.Clamp01(balance) }

// Depth returns the early/late blend.
func (m *Mixer) Depth() float64 { return m.depth }

// Balance returns the dry/wet blend.
func (m *Mixer) Balance() float64 { return m.balance }

// Wet forms the stereo reverb signal from the early pair (in0, in1) and
// the last two network outputs (y0, y1).
func (m *Mixer) Wet(in0, in1, y0, y1 float64) (left, right float64) {
	left = interp.Mix(in0*earlyDirectGain+y0*earlyTailGain, in0*lateDirectGain+y0, m.depth)
	right = interp.Mix(in1*earlyDirectGain+y1*earlyTailGain, in1*lateDirectGain+y1, m.depth)

	return wetGain * left, wetGain * right
}

// Mix blends one dry and wet stereo frame.
func (m *Mixer) Mix(dryL, dryR, wetL, wetR float64) (left, right float64) {
	return interp.Mix(dryL, wetL, m.balance), interp.Mix(dryR, wetR, m.balance)
}

// MixBlock blends dry and wet stereo blocks into dstL and dstR. All
// slices must have the same length. dst may alias dry but not wet.
func (m *Mixer) MixBlock(dstL, dstR, dryL, dryR, wetL, wetR []float64) {
	n := len(dstL)
	m.scratch = core.EnsureLen(m.scratch, n)
	tmp := m.scratch[:n]

	dryGain := 1 - m.balance

	vecmath.ScaleBlock(dstL, dryL, dryGain)
	vecmath.ScaleBlock(tmp, wetL, m.balance)
	vecmath.AddBlockInPlace(dstL, tmp)

	vecmath.ScaleBlock(dstR, dryR, dryGain)
	vecmath.ScaleBlock(tmp, wetR, m.balance)
	vecmath.AddBlockInPlace(dstR, tmp)
}
