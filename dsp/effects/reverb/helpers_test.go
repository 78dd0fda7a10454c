package reverb

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSine(freq, sampleRate float64, n int) float64 {
	return math.Sin(2 * math.Pi * freq * float64(n) / sampleRate)
}

// newTestVerb builds a reproducible reverb at 48 kHz.
func newTestVerb(t testing.TB, opts ...Option) *MatrixVerb {
	t.Helper()

	v, err := New(48000, append([]Option{WithSeed(11)}, opts...)...)
	require.NoError(t, err)

	return v
}

// networkImpulse feeds a unit impulse into line 0 and returns n left
// outputs.
func networkImpulse(nw *Network, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := 0.0
		if i == 0 {
			x = 1
		}

		out[i], _ = nw.Process(x, 0)
	}

	return out
}

// staticParams disables modulation and damping so delays are exact.
func staticParams(liveness float64) Params {
	p := DefaultParams()
	p.Liveness = liveness
	p.HighDamp = 0
	p.ModDepth = 0

	return p
}
