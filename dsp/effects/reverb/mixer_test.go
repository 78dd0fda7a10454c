package reverb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/algo-matrixverb/internal/testutil"
)

func TestMixerClampsControls(t *testing.T) {
	m := NewMixer(2, -1)
	assert.Equal(t, 1.0, m.Depth())
	assert.Equal(t, 0.0, m.Balance())

	m.SetDepth(0.3)
	m.SetBalance(0.6)
	assert.Equal(t, 0.3, m.Depth())
	assert.Equal(t, 0.6, m.Balance())
}

func TestMixerWet(t *testing.T) {
	early := NewMixer(0, 1)
	l, r := early.Wet(1, 2, 3, 4)
	assert.InDelta(t, 0.25*(2+0.3), l, 1e-15)
	assert.InDelta(t, 0.25*(4+0.4), r, 1e-15)

	late := NewMixer(1, 1)
	l, r = late.Wet(1, 2, 3, 4)
	assert.InDelta(t, 0.25*(0.5+3), l, 1e-15)
	assert.InDelta(t, 0.25*(1+4), r, 1e-15)

	half := NewMixer(0.5, 1)
	l, _ = half.Wet(1, 2, 3, 4)
	assert.InDelta(t, 0.25*(0.5*2.3+0.5*3.5), l, 1e-15)
}

func TestMixerMixEndpoints(t *testing.T) {
	dry := NewMixer(0.5, 0)
	l, r := dry.Mix(0.3, -0.7, 5, 6)
	assert.Equal(t, 0.3, l)
	assert.Equal(t, -0.7, r)

	wet := NewMixer(0.5, 1)
	l, r = wet.Mix(0.3, -0.7, 5, 6)
	assert.Equal(t, 5.0, l)
	assert.Equal(t, 6.0, r)
}

func TestMixBlockMatchesMix(t *testing.T) {
	const n = 67

	dryL := testutil.DeterministicNoise(1, 1, n)
	dryR := testutil.DeterministicNoise(2, 1, n)
	wetL := testutil.DeterministicNoise(3, 1, n)
	wetR := testutil.DeterministicNoise(4, 1, n)

	m := NewMixer(0.5, 0.35)

	gotL := make([]float64, n)
	gotR := make([]float64, n)
	m.MixBlock(gotL, gotR, dryL, dryR, wetL, wetR)

	for i := range n {
		l, r := m.Mix(dryL[i], dryR[i], wetL[i], wetR[i])
		assert.InDelta(t, l, gotL[i], 1e-12)
		assert.InDelta(t, r, gotR[i], 1e-12)
	}
}

func TestMixBlockInPlaceOverDry(t *testing.T) {
	dryL := []float64{1, 2, 3}
	dryR := []float64{-1, -2, -3}
	wetL := []float64{0, 0, 0}
	wetR := []float64{1, 1, 1}

	m := NewMixer(0, 0.5)
	m.MixBlock(dryL, dryR, dryL, dryR, wetL, wetR)

	testutil.RequireSliceNearlyEqual(t, dryL, []float64{0.5, 1, 1.5}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, dryR, []float64{0, -0.5, -1}, 1e-15)
}
