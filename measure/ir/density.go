package ir

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidWindow is returned when an analysis window does not fit the
// impulse response.
var ErrInvalidWindow = errors.New("ir: window must be between 1 and the response length")

// gaussianOutlierFraction is erfc(1/√2), the share of Gaussian samples
// lying more than one standard deviation from zero.
var gaussianOutlierFraction = math.Erfc(1 / math.Sqrt2)

// EchoDensity returns the normalized echo density profile of ir.
//
// Each value covers window samples, with consecutive windows overlapping by
// half. It is the fraction of samples whose magnitude exceeds the window
// RMS, divided by erfc(1/√2), so diffuse Gaussian-like reverberation reads
// close to 1 and isolated echoes read close to 0.
func EchoDensity(ir []float64, window int) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	if window < 1 || window > len(ir) {
		return nil, ErrInvalidWindow
	}

	hop := max(window/2, 1)
	profile := make([]float64, 0, (len(ir)-window)/hop+1)

	for start := 0; start+window <= len(ir); start += hop {
		profile = append(profile, windowDensity(ir[start:start+window]))
	}

	return profile, nil
}

// MeanEchoDensity averages the EchoDensity profile of ir.
func MeanEchoDensity(ir []float64, window int) (float64, error) {
	profile, err := EchoDensity(ir, window)
	if err != nil {
		return 0, err
	}

	return vecmath.Sum(profile) / float64(len(profile)), nil
}

func windowDensity(seg []float64) float64 {
	energy := vecmath.DotProduct(seg, seg)
	if energy <= 0 {
		return 0
	}

	rms := math.Sqrt(energy / float64(len(seg)))

	count := 0
	for _, v := range seg {
		if math.Abs(v) > rms {
			count++
		}
	}

	return float64(count) / float64(len(seg)) / gaussianOutlierFraction
}
