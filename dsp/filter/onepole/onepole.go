// Package onepole provides a first-order recursive lowpass ("tone") filter.
//
// The coefficients follow the classic analog-matched tone design:
//
//	b  = 2 - cos(2π·fc/fs)
//	c2 = b - sqrt(b² - 1)
//	y[n] = (1-c2)·x[n] + c2·y[n-1]
//
// which has unity DC gain and a pole that tracks the cutoff smoothly from
// a few Hz up to Nyquist.
package onepole

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
)

// Lowpass is a one-pole lowpass filter with per-instance state.
type Lowpass struct {
	sampleRate float64
	cutoffHz   float64
	c1, c2     float64
	y1         float64
}

// New returns a lowpass at cutoffHz. cutoffHz is clamped to [0, fs/2].
func New(sampleRate, cutoffHz float64) (*Lowpass, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("onepole: sample rate must be > 0 and finite: %v", sampleRate)
	}

	l := &Lowpass{sampleRate: sampleRate}
	l.SetCutoffHz(cutoffHz)

	return l, nil
}

// SampleRate returns the sample rate in Hz.
func (l *Lowpass) SampleRate() float64 { return l.sampleRate }

// CutoffHz returns the effective (clamped) cutoff in Hz.
func (l *Lowpass) CutoffHz() float64 { return l.cutoffHz }

// SetCutoffHz retunes the filter without clearing state. Non-finite values
// are ignored.
func (l *Lowpass) SetCutoffHz(cutoffHz float64) {
	if !core.IsFinite(cutoffHz) {
		return
	}

	l.cutoffHz = core.Clamp(cutoffHz, 0, l.sampleRate/2)

	b := 2 - math.Cos(2*math.Pi*l.cutoffHz/l.sampleRate)
	l.c2 = b - math.Sqrt(b*b-1)
	l.c1 = 1 - l.c2
}

// ProcessSample filters one sample.
func (l *Lowpass) ProcessSample(x float64) float64 {
	y := l.c1*x + l.c2*l.y1
	l.y1 = core.FlushDenormals(y)

	return y
}

// ProcessInPlace filters buf in place.
func (l *Lowpass) ProcessInPlace(buf []float64) {
	c1, c2, y1 := l.c1, l.c2, l.y1
	for i, x := range buf {
		y := c1*x + c2*y1
		buf[i] = y
		y1 = core.FlushDenormals(y)
	}

	l.y1 = y1
}

// Reset clears the filter state.
func (l *Lowpass) Reset() {
	l.y1 = 0
}
