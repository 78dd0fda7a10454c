package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-matrixverb/dsp/filter/biquad"
	"github.com/cwbudde/algo-matrixverb/dsp/filter/design/pass"
	"github.com/cwbudde/algo-matrixverb/dsp/filter/moog"
	"github.com/cwbudde/algo-matrixverb/dsp/filter/onepole"
)

// Supported damping filter orders.
const (
	FilterOrder1 = 1 // 6 dB/oct one-pole
	FilterOrder2 = 2 // 12 dB/oct Butterworth
	FilterOrder4 = 4 // 24 dB/oct ladder

	DefaultFilterOrder = FilterOrder2
)

// NormalizeFilterOrder maps unsupported orders to DefaultFilterOrder.
func NormalizeFilterOrder(order int) int {
	switch order {
	case FilterOrder1, FilterOrder2, FilterOrder4:
		return order
	default:
		return DefaultFilterOrder
	}
}

// damper is the lowpass used inside the feedback loop.
type damper interface {
	ProcessSample(x float64) float64
	setCutoff(hz float64)
	Reset()
}

func newDamper(order int, sampleRate, cutoffHz float64) (damper, error) {
	switch NormalizeFilterOrder(order) {
	case FilterOrder1:
		lp, err := onepole.New(sampleRate, cutoffHz)
		if err != nil {
			return nil, err
		}

		return &toneDamper{Lowpass: lp}, nil
	case FilterOrder4:
		lp, err := moog.New(sampleRate, moog.WithCutoffHz(cutoffHz))
		if err != nil {
			return nil, fmt.Errorf("reverb: ladder damper: %w", err)
		}

		return &ladderDamper{Filter: lp}, nil
	default:
		d := &butterDamper{sampleRate: sampleRate}
		d.Section = biquad.NewSection(biquad.Coefficients{})
		d.setCutoff(cutoffHz)

		return d, nil
	}
}

type toneDamper struct {
	*onepole.Lowpass
}

func (d *toneDamper) setCutoff(hz float64) { d.SetCutoffHz(hz) }

type butterDamper struct {
	*biquad.Section
	sampleRate float64
}

func (d *butterDamper) setCutoff(hz float64) {
	sections := pass.ButterworthLP(hz, FilterOrder2, d.sampleRate)
	d.SetCoefficients(sections[0])
}

type ladderDamper struct {
	*moog.Filter
}

// setCutoff ignores out-of-range cutoffs; callers clamp below Nyquist.
func (d *ladderDamper) setCutoff(hz float64) { _ = d.SetCutoffHz(hz) }
