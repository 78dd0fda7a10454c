package prime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferenceRange(t *testing.T) {
	assert.Equal(t, []int{11, 13, 17, 19, 23, 29}, Generate(10, 30))
	assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19}, Generate(0, 20))
}

func TestGenerateBoundsAreExclusive(t *testing.T) {
	assert.Equal(t, []int{13, 17, 19}, Generate(11, 23))
	assert.Empty(t, Generate(19, 20))
	assert.Empty(t, Generate(0, 2))
	assert.Empty(t, Generate(50, 10))
}

func TestGenerateStrictlyIncreasingPrimes(t *testing.T) {
	primes := Generate(1000, 5000)
	require.NotEmpty(t, primes)

	for i, p := range primes {
		assert.Greater(t, p, 1000)
		assert.Less(t, p, 5000)
		if i > 0 {
			require.Greater(t, p, primes[i-1], "index %d", i)
		}
		for d := 2; d*d <= p; d++ {
			require.NotZero(t, p%d, "%d divisible by %d", p, d)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Generate(2400, 7200)
	}
}
