package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
)

// Generator renders test signals at a configured sample rate.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator returns a generator. Unset options take
// core.DefaultProcessorConfig values.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the processing configuration.
func (g *Generator) Config() core.ProcessorConfig { return g.cfg }

// Samples converts seconds to a rounded sample count.
func (g *Generator) Samples(seconds float64) int {
	if !(seconds > 0) {
		return 0
	}

	return int(math.Round(seconds * g.cfg.SampleRate))
}

// Impulse returns n samples that are zero except for amplitude at pos.
func (g *Generator) Impulse(amplitude float64, n, pos int) ([]float64, error) {
	if err := checkLength("impulse", n); err != nil {
		return nil, err
	}

	if pos < 0 || pos >= n {
		return nil, fmt.Errorf("signal: impulse position must be in [0, %d): %d", n, pos)
	}

	out := make([]float64, n)
	out[pos] = amplitude

	return out, nil
}

// Sine returns n samples of a sine at hz starting at phase zero.
func (g *Generator) Sine(hz, amplitude float64, n int) ([]float64, error) {
	if err := checkLength("sine", n); err != nil {
		return nil, err
	}

	w := 2 * math.Pi * hz / g.cfg.SampleRate

	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}

	return out, nil
}

// Noise returns n samples of uniform white noise in [-amplitude, amplitude].
// Equal seeds give equal output.
func (g *Generator) Noise(seed int64, amplitude float64, n int) ([]float64, error) {
	if err := checkLength("noise", n); err != nil {
		return nil, err
	}

	if !(amplitude >= 0) {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}

	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}

	return out, nil
}

// Blocks calls fn for consecutive [start, end) ranges of at most
// Config().BlockSize samples covering n. It stops at the first error.
func (g *Generator) Blocks(n int, fn func(start, end int) error) error {
	for start := 0; start < n; start += g.cfg.BlockSize {
		if err := fn(start, min(start+g.cfg.BlockSize, n)); err != nil {
			return err
		}
	}

	return nil
}

func checkLength(kind string, n int) error {
	if n <= 0 {
		return fmt.Errorf("signal: %s length must be > 0: %d", kind, n)
	}

	return nil
}
