package ir

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by BandDecay.
var (
	ErrInvalidFrameSize = errors.New("ir: frame size must be a power of two of at least 16")
	ErrInvalidSplit     = errors.New("ir: split frequency must lie between 0 and Nyquist")
)

// Bands holds per-frame energies below and above a split frequency.
type Bands struct {
	FrameSize int
	SplitHz   float64
	Low       []float64
	High      []float64
}

// HighToLowRatio returns the total high-band energy divided by the total
// low-band energy, or 0 when the low band is silent.
func (b Bands) HighToLowRatio() float64 {
	low := vecmath.Sum(b.Low)
	if low <= 0 {
		return 0
	}

	return vecmath.Sum(b.High) / low
}

// Frames returns the number of analysed frames.
func (b Bands) Frames() int {
	return len(b.Low)
}

// BandDecay cuts ir into consecutive Hann-windowed frames of frameSize
// samples and measures each frame's spectral energy below and above
// splitHz. The last frame is zero padded.
func BandDecay(ir []float64, sampleRate float64, frameSize int, splitHz float64) (Bands, error) {
	switch {
	case len(ir) == 0:
		return Bands{}, ErrEmptyIR
	case !(sampleRate > 0):
		return Bands{}, ErrInvalidSampleRate
	case frameSize < 16 || frameSize&(frameSize-1) != 0:
		return Bands{}, ErrInvalidFrameSize
	case !(splitHz > 0) || splitHz >= sampleRate/2:
		return Bands{}, ErrInvalidSplit
	}

	plan, err := algofft.NewPlan64(frameSize)
	if err != nil {
		return Bands{}, fmt.Errorf("ir: fft plan: %w", err)
	}

	bins := frameSize/2 + 1
	split := int(math.Round(splitHz * float64(frameSize) / sampleRate))
	split = min(max(split, 1), bins-1)

	hann := make([]float64, frameSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(frameSize))
	}

	frames := (len(ir) + frameSize - 1) / frameSize
	out := Bands{
		FrameSize: frameSize,
		SplitHz:   splitHz,
		Low:       make([]float64, frames),
		High:      make([]float64, frames),
	}

	in := make([]complex128, frameSize)
	spec := make([]complex128, frameSize)
	re := make([]float64, bins)
	im := make([]float64, bins)
	pow := make([]float64, bins)

	for f := range frames {
		start := f * frameSize
		for i := range in {
			var x float64
			if start+i < len(ir) {
				x = ir[start+i] * hann[i]
			}

			in[i] = complex(x, 0)
		}

		if err := plan.Forward(spec, in); err != nil {
			return Bands{}, fmt.Errorf("ir: fft: %w", err)
		}

		for k := range bins {
			re[k] = real(spec[k])
			im[k] = imag(spec[k])
		}

		vecmath.Power(pow, re, im)
		out.Low[f] = vecmath.Sum(pow[:split])
		out.High[f] = vecmath.Sum(pow[split:])
	}

	return out, nil
}
