package reverb

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-matrixverb/internal/testutil"
	"github.com/cwbudde/algo-matrixverb/measure/ir"
)

func TestNewNetworkValidation(t *testing.T) {
	cases := map[string]struct {
		sr  float64
		cfg NetworkConfig
	}{
		"no lines":      {48000, NetworkConfig{}},
		"odd size":      {48000, NetworkConfig{Delays: []int{3, 5, 7}}},
		"single line":   {48000, NetworkConfig{Delays: []int{3}}},
		"zero length":   {48000, NetworkConfig{Delays: []int{3, 0}}},
		"zero rate":     {0, NetworkConfig{Delays: []int{3, 5}}},
		"nan rate":      {math.NaN(), NetworkConfig{Delays: []int{3, 5}}},
		"max mod >= 1":  {48000, NetworkConfig{Delays: []int{3, 5}, MaxModDepth: 1}},
		"negative mod":  {48000, NetworkConfig{Delays: []int{3, 5}, MaxModDepth: -0.1}},
	}

	for name, tc := range cases {
		_, err := NewNetwork(tc.sr, tc.cfg)
		assert.Error(t, err, name)
	}
}

func TestNetworkStructure(t *testing.T) {
	delays := []int{101, 103, 107, 109, 113, 127, 131, 137}

	nw, err := NewNetwork(48000, NetworkConfig{Delays: delays, Seed: 3})
	require.NoError(t, err)

	assert.Equal(t, 8, nw.Size())
	assert.Equal(t, 3, nw.Order())
	assert.Equal(t, DefaultFilterOrder, nw.FilterOrder())
	assert.Equal(t, delays, nw.Delays())
	assert.Equal(t, int(math.Ceil(137*(1+DefaultMaxModDepth)))+3, nw.MaxLineLength())

	for _, j := range nw.Jitter() {
		assert.GreaterOrEqual(t, j, minJitter)
		assert.LessOrEqual(t, j, maxJitter)
	}
}

func TestNetworkJitterFollowsSeed(t *testing.T) {
	delays := []int{101, 103, 107, 109}

	a, err := NewNetwork(48000, NetworkConfig{Delays: delays, Seed: 5})
	require.NoError(t, err)

	b, err := NewNetwork(48000, NetworkConfig{Delays: delays, Seed: 5})
	require.NoError(t, err)

	c, err := NewNetwork(48000, NetworkConfig{Delays: delays, Seed: 6})
	require.NoError(t, err)

	assert.Equal(t, a.Jitter(), b.Jitter())
	assert.NotEqual(t, a.Jitter(), c.Jitter())
}

func TestNetworkCompensationAndGain(t *testing.T) {
	delays := make([]int, 16)
	for i := range delays {
		delays[i] = 100 + i
	}

	nw, err := NewNetwork(48000, NetworkConfig{Delays: delays})
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(10, -4*3.01/20), nw.Compensation(), 1e-12)

	ladder, err := NewNetwork(48000, NetworkConfig{Delays: delays, FilterOrder: FilterOrder4})
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(10, -4*4.01/20), ladder.Compensation(), 1e-12)

	nw.SetLiveness(0.5)
	assert.InDelta(t, 0.5*nw.Compensation(), nw.Gain(), 1e-15)

	nw.SetLiveness(3)
	assert.InDelta(t, nw.Compensation(), nw.Gain(), 1e-15)

	nw.SetLiveness(-1)
	assert.Zero(t, nw.Gain())
}

func TestNetworkZeroLivenessStopsWithInput(t *testing.T) {
	nw, err := NewNetwork(48000, NetworkConfig{Delays: []int{211, 223, 227, 229}, Seed: 1})
	require.NoError(t, err)
	nw.SetLiveness(0)

	burst := testutil.DeterministicNoise(2, 1, 100)
	out := make([]float64, 100+nw.MaxLineLength()+1)

	for i := range out {
		var x float64
		if i < len(burst) {
			x = burst[i]
		}

		l, r := nw.Process(x, 0)
		out[i] = math.Abs(l) + math.Abs(r)
	}

	assert.Positive(t, testutil.Energy(out[:100]))
	testutil.RequireSilentAfter(t, out, 100, 0)
}

func TestNetworkFeedbackSustainsTail(t *testing.T) {
	nw, err := NewNetwork(48000, NetworkConfig{Delays: []int{211, 223, 227, 229}, Seed: 1})
	require.NoError(t, err)
	nw.SetLiveness(0.9)

	out := networkImpulse(nw, 4000)
	testutil.RequireFinite(t, out)
	assert.Positive(t, testutil.Energy(out[2000:]))
	assert.Less(t, testutil.Energy(out[3000:]), testutil.Energy(out[:1000]))
}

func TestNetworkStaticDelaysAreExact(t *testing.T) {
	delays := []int{101, 211}

	nw, err := NewNetwork(48000, NetworkConfig{Delays: delays, Seed: 1})
	require.NoError(t, err)
	nw.SetLiveness(1)
	nw.SetHighDamp(0)
	nw.SetModulation(0, 0)

	out := networkImpulse(nw, 400)
	g := nw.Gain()

	// Injection passes straight through the butterfly, then returns after
	// each line length scaled by the loop gain. Both round trips of
	// 101+211 samples arrive together.
	assert.Equal(t, 1.0, out[0])
	assert.InDelta(t, g, out[101], 1e-15)
	assert.InDelta(t, g*g, out[202], 1e-15)
	assert.InDelta(t, g, out[211], 1e-15)
	assert.InDelta(t, 2*g*g, out[312], 1e-15)

	for _, n := range []int{1, 50, 100, 102, 150, 210, 212, 311, 313} {
		assert.Zero(t, out[n], "n=%d", n)
	}
}

func TestNetworkQualityDensity(t *testing.T) {
	const window = 30000

	density := func(quality int) (active int, echoes int, ned float64) {
		v := newTestVerb(t, WithQuality(quality), WithParams(staticParams(0.9)))
		out := networkImpulse(v.network, window)

		mean, err := ir.MeanEchoDensity(out, 2048)
		require.NoError(t, err)

		return v.NumDelays(), testutil.NonZeroCount(out, 1e-12), mean
	}

	lines1, echoes1, ned1 := density(1)
	lines4, echoes4, ned4 := density(4)

	assert.Equal(t, 2, lines1)
	assert.Equal(t, 16, lines4)
	assert.Greater(t, echoes4, 10*echoes1)
	assert.Greater(t, ned4, ned1)
}

func TestNetworkResetReproducesOutput(t *testing.T) {
	nw, err := NewNetwork(48000, NetworkConfig{Delays: []int{211, 223, 227, 229}, Seed: 9})
	require.NoError(t, err)
	nw.SetModulation(0.2, 7)

	first := networkImpulse(nw, 3000)
	nw.Reset()
	second := networkImpulse(nw, 3000)

	assert.Equal(t, first, second)
}

func TestNetworkModulationClamp(t *testing.T) {
	nw, err := NewNetwork(48000, NetworkConfig{Delays: []int{211, 223}, MaxModDepth: 0.5, Seed: 1})
	require.NoError(t, err)

	nw.SetModulation(0.9, 2)

	for _, m := range nw.mods {
		lo, hi := m.Range()
		assert.InDelta(t, 0.5, lo, 1e-15)
		assert.InDelta(t, 1.5, hi, 1e-15)
	}

	nw.SetModulation(math.NaN(), -1)

	for _, m := range nw.mods {
		lo, hi := m.Range()
		assert.Equal(t, 1.0, lo)
		assert.Equal(t, 1.0, hi)
		assert.Zero(t, m.Freq())
	}

	out := networkImpulse(nw, 2000)
	testutil.RequireFinite(t, out)
}

func BenchmarkNetworkProcess(b *testing.B) {
	delays := make([]int, 16)
	for i := range delays {
		delays[i] = 2400 + 300*i
	}

	nw, err := NewNetwork(48000, NetworkConfig{Delays: delays, Seed: 1})
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		nw.Process(0.1, -0.1)
	}
}
