package reverb

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
	"github.com/cwbudde/algo-matrixverb/dsp/prime"
)

const (
	defaultEchoCount = 8
	defaultQuality   = 4

	// MinQuality and MaxQuality bound the network size 2^quality.
	MinQuality = 1
	MaxQuality = 4
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	echoCount     int
	quality       int
	filterOrder   int
	echoRange     prime.Range
	echoSpacing   prime.Spacing
	matrixRange   prime.Range
	matrixSpacing prime.Spacing
	params        Params
	seed          int64
	maxModDepth   float64
	maxExtensions int
	fadeSeconds   float64
}

func defaultConfig() config {
	return config{
		echoCount:     defaultEchoCount,
		quality:       defaultQuality,
		filterOrder:   DefaultFilterOrder,
		echoRange:     prime.Range{Min: 0.03, Max: 0.08},
		echoSpacing:   prime.DefaultSpacing,
		matrixRange:   prime.Range{Min: 0.05, Max: 0.15},
		matrixSpacing: prime.DefaultSpacing,
		params:        DefaultParams(),
		seed:          time.Now().UnixNano(),
		maxModDepth:   DefaultMaxModDepth,
		maxExtensions: prime.DefaultMaxExtensions,
		fadeSeconds:   DefaultFadeSeconds,
	}
}

// WithEchoCount sets the number of early reflection stages (>= 1).
func WithEchoCount(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("reverb: echo count must be >= 1: %d", n)
		}

		cfg.echoCount = n

		return nil
	}
}

// WithQuality sets the network size to 2^quality lines. quality is
// clamped to [MinQuality, MaxQuality].
func WithQuality(quality int) Option {
	return func(cfg *config) error {
		cfg.quality = core.ClampInt(quality, MinQuality, MaxQuality)
		return nil
	}
}

// WithFilterOrder selects the damping filter order. Values other than 1,
// 2 and 4 select 2.
func WithFilterOrder(order int) Option {
	return func(cfg *config) error {
		cfg.filterOrder = NormalizeFilterOrder(order)
		return nil
	}
}

// WithEchoRange sets the early reflection delay range in seconds.
func WithEchoRange(minSeconds, maxSeconds float64) Option {
	return func(cfg *config) error {
		r := prime.Range{Min: minSeconds, Max: maxSeconds}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("reverb: echo range: %w", err)
		}

		cfg.echoRange = r

		return nil
	}
}

// WithEchoSpacing sets the early reflection spacing policy. Invalid
// policies select prime.DefaultSpacing.
func WithEchoSpacing(s prime.Spacing) Option {
	return func(cfg *config) error {
		cfg.echoSpacing = validSpacing(s)
		return nil
	}
}

// WithEchoMode sets the early reflection spacing policy by name. Unknown
// names select prime.DefaultSpacing.
func WithEchoMode(name string) Option {
	s, _ := prime.ParseSpacing(name)
	return WithEchoSpacing(s)
}

// WithMatrixRange sets the network line length range in seconds.
func WithMatrixRange(minSeconds, maxSeconds float64) Option {
	return func(cfg *config) error {
		r := prime.Range{Min: minSeconds, Max: maxSeconds}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("reverb: matrix range: %w", err)
		}

		cfg.matrixRange = r

		return nil
	}
}

// WithMatrixSpacing sets the network line spacing policy. Invalid
// policies select prime.DefaultSpacing.
func WithMatrixSpacing(s prime.Spacing) Option {
	return func(cfg *config) error {
		cfg.matrixSpacing = validSpacing(s)
		return nil
	}
}

// WithMatrixMode sets the network line spacing policy by name. Unknown
// names select prime.DefaultSpacing.
func WithMatrixMode(name string) Option {
	s, _ := prime.ParseSpacing(name)
	return WithMatrixSpacing(s)
}

// WithParams sets the initial runtime controls.
func WithParams(p Params) Option {
	return func(cfg *config) error {
		cfg.params = p
		return nil
	}
}

// WithSeed fixes the random source used for the Rand spacing policy and
// the modulators. Without it each instance is seeded from the clock.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithMaxModDepth sets the largest accepted ModDepth, in [0, 1). Delay
// buffers are sized for it.
func WithMaxModDepth(depth float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(depth) || depth < 0 || depth >= 1 {
			return fmt.Errorf("reverb: max modulation depth must be in [0, 1): %v", depth)
		}

		cfg.maxModDepth = depth

		return nil
	}
}

// WithMaxRangeExtensions bounds how often a delay range is widened by
// prime.ExtensionSeconds when it holds too few primes.
func WithMaxRangeExtensions(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return fmt.Errorf("reverb: max range extensions must be >= 0: %d", n)
		}

		cfg.maxExtensions = n

		return nil
	}
}

// WithFadeTime sets the default SetInput crossfade time in seconds,
// clamped to >= 0.
func WithFadeTime(seconds float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(seconds) || seconds < 0 {
			seconds = 0
		}

		cfg.fadeSeconds = seconds

		return nil
	}
}

func validSpacing(s prime.Spacing) prime.Spacing {
	if !s.Valid() {
		return prime.DefaultSpacing
	}

	return s
}
