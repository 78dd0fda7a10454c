package prime

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reference = []int{11, 13, 17, 19, 23, 29}

func TestSelectReferencePicks(t *testing.T) {
	tests := []struct {
		spacing Spacing
		want    []int
	}{
		{LinMin, []int{11, 17, 23}},
		{LinMax, []int{29, 19, 13}},
		{ExpMin, []int{11, 13, 19}},
		{ExpMax, []int{29, 23, 17}},
		{SqrtMin, []int{11, 19, 23}},
		{SqrtMax, []int{29, 17, 13}},
		{PowMin, []int{11, 11, 17}},
		{PowMax, []int{29, 29, 19}},
	}

	for _, tt := range tests {
		t.Run(tt.spacing.String(), func(t *testing.T) {
			got, err := Select(reference, 3, tt.spacing, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectEveryPolicyReturnsMembers(t *testing.T) {
	primes := Generate(1440, 3840)
	member := make(map[int]bool, len(primes))
	for _, p := range primes {
		member[p] = true
	}

	rng := rand.New(rand.NewSource(7))
	for _, spacing := range Spacings() {
		for _, count := range []int{1, 2, 8, 16} {
			got, err := Select(primes, count, spacing, rng)
			require.NoError(t, err, "%v count=%d", spacing, count)
			require.Len(t, got, count)
			for _, p := range got {
				assert.True(t, member[p], "%v picked non-member %d", spacing, p)
			}
		}
	}
}

func TestSelectRandomWithoutReplacement(t *testing.T) {
	got, err := Select(reference, len(reference), Rand, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.ElementsMatch(t, reference, got)
}

func TestSelectRandomReproducibleWithSeed(t *testing.T) {
	primes := Generate(100, 1000)

	a, err := Select(primes, 8, Rand, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Select(primes, 8, Rand, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSelectDeterministicPolicies(t *testing.T) {
	primes := Generate(2400, 7200)
	for _, spacing := range Spacings() {
		if spacing == Rand {
			continue
		}
		a, err := Select(primes, 16, spacing, nil)
		require.NoError(t, err)
		b, err := Select(primes, 16, spacing, rand.New(rand.NewSource(99)))
		require.NoError(t, err)
		assert.Equal(t, a, b, spacing.String())
	}
}

func TestSelectInvalidPolicyFallsBackToLinMin(t *testing.T) {
	got, err := Select(reference, 3, Spacing(99), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 17, 23}, got)
}

func TestSelectErrors(t *testing.T) {
	_, err := Select(nil, 1, LinMin, nil)
	assert.ErrorIs(t, err, ErrEmptyPrimes)

	_, err = Select(reference, 0, LinMin, nil)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = Select(reference, 7, LinMin, nil)
	assert.ErrorIs(t, err, ErrInsufficientPrimes)
}

func TestParseSpacing(t *testing.T) {
	for _, s := range Spacings() {
		got, ok := ParseSpacing(s.String())
		assert.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}

	got, ok := ParseSpacing(" ExpMax ")
	assert.True(t, ok)
	assert.Equal(t, ExpMax, got)

	got, ok = ParseSpacing("logmin")
	assert.False(t, ok)
	assert.Equal(t, LinMin, got)
	assert.Equal(t, "unknown", Spacing(-1).String())
}
