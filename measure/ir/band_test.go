package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}

	return out
}

func TestBandDecaySeparatesBands(t *testing.T) {
	const sr = 48000.0

	low, err := BandDecay(sine(100, sr, 4096), sr, 1024, 2000)
	require.NoError(t, err)
	assert.Equal(t, 4, low.Frames())
	assert.Less(t, low.HighToLowRatio(), 1e-4)

	high, err := BandDecay(sine(10000, sr, 4096), sr, 1024, 2000)
	require.NoError(t, err)
	assert.Greater(t, high.HighToLowRatio(), 1e4)
}

func TestBandDecayFollowsEnvelope(t *testing.T) {
	const sr = 48000.0

	h := sine(5000, sr, 8192)
	for i := range h {
		h[i] *= math.Exp(-float64(i) / 2000)
	}

	bands, err := BandDecay(h, sr, 1024, 1000)
	require.NoError(t, err)
	require.Equal(t, 8, bands.Frames())

	for f := 1; f < bands.Frames(); f++ {
		assert.Less(t, bands.High[f], bands.High[f-1], "frame %d", f)
	}
}

func TestBandDecayZeroPadsLastFrame(t *testing.T) {
	bands, err := BandDecay(sine(1000, 48000, 1500), 48000, 1024, 4000)
	require.NoError(t, err)
	assert.Equal(t, 2, bands.Frames())
	assert.Equal(t, 1024, bands.FrameSize)
	assert.Positive(t, bands.Low[1])
}

func TestBandDecaySilence(t *testing.T) {
	bands, err := BandDecay(make([]float64, 256), 48000, 64, 1000)
	require.NoError(t, err)
	assert.Zero(t, bands.HighToLowRatio())
}

func TestBandDecayValidation(t *testing.T) {
	h := make([]float64, 128)

	_, err := BandDecay(nil, 48000, 64, 1000)
	require.ErrorIs(t, err, ErrEmptyIR)

	_, err = BandDecay(h, 0, 64, 1000)
	require.ErrorIs(t, err, ErrInvalidSampleRate)

	for _, size := range []int{0, 8, 100} {
		_, err = BandDecay(h, 48000, size, 1000)
		require.ErrorIs(t, err, ErrInvalidFrameSize, "size %d", size)
	}

	for _, split := range []float64{0, -1, 24000, math.NaN()} {
		_, err = BandDecay(h, 48000, 64, split)
		require.ErrorIs(t, err, ErrInvalidSplit, "split %g", split)
	}
}

func BenchmarkBandDecay(b *testing.B) {
	h := sine(3000, 48000, 48000)

	for b.Loop() {
		if _, err := BandDecay(h, 48000, 1024, 4000); err != nil {
			b.Fatal(err)
		}
	}
}
