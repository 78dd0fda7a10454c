package prime

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
)

const (
	// ExtensionSeconds is how far the upper bound moves on each retry.
	ExtensionSeconds = 0.005
	// DefaultMaxExtensions bounds the number of widening retries (+1 s).
	DefaultMaxExtensions = 200
)

// Range is a time interval in seconds.
type Range struct {
	Min float64
	Max float64
}

// Validate reports whether r is a usable, non-empty interval.
func (r Range) Validate() error {
	if !core.IsFinite(r.Min) || !core.IsFinite(r.Max) {
		return fmt.Errorf("prime: range bounds must be finite: [%v, %v]", r.Min, r.Max)
	}

	if r.Min < 0 {
		return fmt.Errorf("prime: range min must be >= 0: %v", r.Min)
	}

	if r.Min >= r.Max {
		return fmt.Errorf("prime: range min must be < max: [%v, %v]", r.Min, r.Max)
	}

	return nil
}

// Delays is the result of Plan.
type Delays struct {
	// Samples holds the selected prime delay lengths.
	Samples []int
	// Seconds holds Samples divided by the sample rate.
	Seconds []float64
	// Extensions counts how many times the upper bound was widened.
	Extensions int
}

// MaxSamples returns the longest selected delay in samples.
func (d Delays) MaxSamples() int {
	longest := 0
	for _, s := range d.Samples {
		longest = max(longest, s)
	}

	return longest
}

// PlanConfig carries the optional inputs of Plan.
type PlanConfig struct {
	// MaxExtensions bounds range widening; values < 0 select DefaultMaxExtensions.
	MaxExtensions int
	// Rand feeds the Rand spacing policy.
	Rand *rand.Rand
}

// Plan picks count prime delay lengths inside r at sampleRate.
//
// When r holds fewer than count primes its upper bound is widened by
// ExtensionSeconds and the primes regenerated, at most cfg.MaxExtensions
// times. Exhaustion returns an error wrapping ErrInsufficientPrimes.
func Plan(r Range, count int, spacing Spacing, sampleRate float64, cfg PlanConfig) (Delays, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return Delays{}, fmt.Errorf("prime: sample rate must be > 0: %f", sampleRate)
	}

	if err := r.Validate(); err != nil {
		return Delays{}, err
	}

	if count < 1 {
		return Delays{}, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	maxExtensions := cfg.MaxExtensions
	if maxExtensions < 0 {
		maxExtensions = DefaultMaxExtensions
	}

	minSamples := int(r.Min * sampleRate)

	var primes []int
	extensions := 0
	for {
		maxSamples := int((r.Max + float64(extensions)*ExtensionSeconds) * sampleRate)

		primes = Generate(minSamples, maxSamples)
		if len(primes) >= count {
			break
		}

		if extensions >= maxExtensions {
			return Delays{}, fmt.Errorf("%w: %d primes in [%g, %g] s after %d extensions, want %d",
				ErrInsufficientPrimes, len(primes), r.Min, r.Max+float64(extensions)*ExtensionSeconds,
				extensions, count)
		}

		extensions++
	}

	samples, err := Select(primes, count, spacing, cfg.Rand)
	if err != nil {
		return Delays{}, err
	}

	seconds := make([]float64, len(samples))
	for i, s := range samples {
		seconds[i] = float64(s) / sampleRate
	}

	return Delays{Samples: samples, Seconds: seconds, Extensions: extensions}, nil
}
