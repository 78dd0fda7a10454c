package reverb

import (
	"github.com/cwbudde/algo-matrixverb/dsp/core"
)

const (
	defaultLiveness    = 0.7
	defaultDepth       = 0.7
	defaultCrossoverHz = 3500.0
	defaultHighDamp    = 0.75
	defaultBalance     = 0.25
	defaultModDepth    = 0.03
	defaultModSpeedHz  = 1.0

	// MinCrossoverHz is the lowest damping and prefilter cutoff.
	MinCrossoverHz = 10.0
	// MaxCrossoverRatio bounds the cutoff relative to the sample rate.
	MaxCrossoverRatio = 0.45
)

// Params holds the runtime-mutable reverb controls.
type Params struct {
	// Liveness is the feedback amount in [0, 1]; 1 sustains indefinitely.
	Liveness float64
	// Depth balances early reflections (0) against the late tail (1).
	Depth float64
	// CrossoverHz is the damping and prefilter cutoff.
	CrossoverHz float64
	// HighDamp is the strength of damping above CrossoverHz, in [0, 1].
	HighDamp float64
	// Balance is the dry (0) to wet (1) mix.
	Balance float64
	// ModDepth is the relative delay-length modulation depth.
	ModDepth float64
	// ModSpeedHz is the base modulation rate.
	ModSpeedHz float64
}

// DefaultParams returns the default runtime controls.
func DefaultParams() Params {
	return Params{
		Liveness:    defaultLiveness,
		Depth:       defaultDepth,
		CrossoverHz: defaultCrossoverHz,
		HighDamp:    defaultHighDamp,
		Balance:     defaultBalance,
		ModDepth:    defaultModDepth,
		ModSpeedHz:  defaultModSpeedHz,
	}
}

// clamped returns p with every field forced into its legal range.
// Non-finite fields fall back to their defaults.
func (p Params) clamped(sampleRate, maxModDepth float64) Params {
	d := DefaultParams()

	return Params{
		Liveness:    core.Clamp01(finiteOr(p.Liveness, d.Liveness)),
		Depth:       core.Clamp01(finiteOr(p.Depth, d.Depth)),
		CrossoverHz: clampCrossover(finiteOr(p.CrossoverHz, d.CrossoverHz), sampleRate),
		HighDamp:    core.Clamp01(finiteOr(p.HighDamp, d.HighDamp)),
		Balance:     core.Clamp01(finiteOr(p.Balance, d.Balance)),
		ModDepth:    core.Clamp(finiteOr(p.ModDepth, d.ModDepth), 0, maxModDepth),
		ModSpeedHz:  max(finiteOr(p.ModSpeedHz, d.ModSpeedHz), 0),
	}
}

func clampCrossover(hz, sampleRate float64) float64 {
	return core.Clamp(hz, MinCrossoverHz, MaxCrossoverRatio*sampleRate)
}

func finiteOr(v, fallback float64) float64 {
	if core.IsFinite(v) {
		return v
	}

	return fallback
}
