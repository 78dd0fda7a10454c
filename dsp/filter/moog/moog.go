package moog

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
)

const poles = 4

const (
	defaultCutoffHz = 1000.0
	defaultDrive    = 1.0

	// vt scales the stage saturators; larger values keep the ladder linear
	// over a wider input range.
	vt = 5.0

	maxResonance = 4.0
	minDrive     = 0.1
	maxDrive     = 24.0

	stageLimit = 32.0
)

// Option configures a Filter at construction.
type Option func(*Filter) error

// WithCutoffHz sets the cutoff in Hz. It must be at least 1 Hz and below
// Nyquist.
func WithCutoffHz(hz float64) Option {
	return func(f *Filter) error {
		if err := checkRange("cutoff", hz, 1, math.Inf(1)); err != nil {
			return err
		}

		f.cutoffHz = hz

		return nil
	}
}

// WithResonance sets the feedback amount in [0, 4]. The default is 0.
func WithResonance(k float64) Option {
	return func(f *Filter) error {
		if err := checkRange("resonance", k, 0, maxResonance); err != nil {
			return err
		}

		f.resonance = k

		return nil
	}
}

// WithDrive sets the saturator drive in [0.1, 24].
func WithDrive(drive float64) Option {
	return func(f *Filter) error {
		if err := checkRange("drive", drive, minDrive, maxDrive); err != nil {
			return err
		}

		f.drive = drive

		return nil
	}
}

// Filter is a four-pole nonlinear ladder lowpass with tuning and resonance
// compensation after Huovilainen.
type Filter struct {
	sampleRate float64
	cutoffHz   float64
	resonance  float64
	drive      float64

	g     float64 // per-stage integrator gain
	k     float64 // compensated feedback
	shape float64 // saturator input scale
	gain  float64 // output makeup

	stage [poles]float64
	prev  float64 // last stage output one sample ago
}

// New returns a ladder filter at the given sample rate.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("moog: sample rate must be > 0 and finite: %f", sampleRate)
	}

	f := &Filter{
		sampleRate: sampleRate,
		cutoffHz:   defaultCutoffHz,
		drive:      defaultDrive,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(f); err != nil {
			return nil, err
		}
	}

	if err := f.tune(); err != nil {
		return nil, err
	}

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// CutoffHz returns the cutoff in Hz.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// Resonance returns the feedback amount.
func (f *Filter) Resonance() float64 { return f.resonance }

// Drive returns the saturator drive.
func (f *Filter) Drive() float64 { return f.drive }

// SetCutoffHz retunes the ladder without clearing its state. On error the
// previous cutoff stays in effect.
func (f *Filter) SetCutoffHz(hz float64) error {
	if err := checkRange("cutoff", hz, 1, math.Inf(1)); err != nil {
		return err
	}

	prev := f.cutoffHz
	f.cutoffHz = hz

	if err := f.tune(); err != nil {
		f.cutoffHz = prev
		return err
	}

	return nil
}

// SetResonance updates the feedback amount.
func (f *Filter) SetResonance(k float64) error {
	if err := checkRange("resonance", k, 0, maxResonance); err != nil {
		return err
	}

	f.resonance = k

	return f.tune()
}

// SetDrive updates the saturator drive.
func (f *Filter) SetDrive(drive float64) error {
	if err := checkRange("drive", drive, minDrive, maxDrive); err != nil {
		return err
	}

	f.drive = drive
	f.shape = 0.5 * drive / vt

	return nil
}

// Reset clears the ladder.
func (f *Filter) Reset() {
	f.stage = [poles]float64{}
	f.prev = 0
}

// ProcessSample filters one sample. Non-finite input is treated as silence.
func (f *Filter) ProcessSample(x float64) float64 {
	if !core.IsFinite(x) {
		x = 0
	}

	last := f.stage[poles-1]
	fb := 0.5 * (last + f.prev)
	f.prev = last

	in := ladderTanh(f.shape * (x - f.k*fb))
	for i, s := range f.stage {
		s = core.Clamp(s+f.g*(in-ladderTanh(f.shape*s)), -stageLimit, stageLimit)
		f.stage[i] = s
		in = ladderTanh(f.shape * s)
	}

	y := f.gain * f.stage[poles-1]
	if !core.IsFinite(y) {
		return 0
	}

	return y
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i, v := range buf {
		buf[i] = f.ProcessSample(v)
	}
}

// tune derives the integrator gain and feedback from cutoff and resonance.
func (f *Filter) tune() error {
	if nyquist := 0.5 * f.sampleRate; f.cutoffHz >= nyquist {
		return fmt.Errorf("moog: cutoff must be < Nyquist (%f Hz): %f", nyquist, f.cutoffHz)
	}

	fc := f.cutoffHz / f.sampleRate
	fc2 := fc * fc

	tuning := math.Max(0, 1.8730*fc2*fc+0.4955*fc2-0.6490*fc+0.9988)
	comp := math.Max(0, -3.9364*fc2+1.8409*fc+0.9968)

	f.g = 2 * vt * (1 - math.Exp(-2*math.Pi*tuning*fc))
	f.k = f.resonance * comp
	f.shape = 0.5 * f.drive / vt
	f.gain = (1 + f.k) / (1 + 0.5*f.resonance)

	return nil
}

func checkRange(name string, v, lo, hi float64) error {
	if !core.IsFinite(v) {
		return fmt.Errorf("moog: %s must be finite: %v", name, v)
	}

	if v < lo || v > hi {
		return fmt.Errorf("moog: %s must be in [%g, %g]: %f", name, lo, hi, v)
	}

	return nil
}
