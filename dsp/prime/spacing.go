package prime

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
)

// Spacing selects how delay lengths are distributed over a prime list.
type Spacing int

const (
	// LinMin takes evenly strided primes starting at the shortest.
	LinMin Spacing = iota
	// LinMax takes evenly strided primes starting at the longest.
	LinMax
	// ExpMin follows (e^(i/n)-1)/(e-1), dense near the shortest primes.
	ExpMin
	// ExpMax mirrors ExpMin from the longest prime.
	ExpMax
	// SqrtMin follows sqrt(i/n), spreading quickly away from the shortest.
	SqrtMin
	// SqrtMax mirrors SqrtMin from the longest prime.
	SqrtMax
	// PowMin follows (10^(i/n)-1)/9, strongly clustered near the shortest.
	PowMin
	// PowMax mirrors PowMin from the longest prime.
	PowMax
	// Rand draws primes uniformly without replacement.
	Rand
)

// DefaultSpacing is used whenever a policy name is not recognised.
const DefaultSpacing = LinMin

var spacingNames = [...]string{
	LinMin:  "linmin",
	LinMax:  "linmax",
	ExpMin:  "expmin",
	ExpMax:  "expmax",
	SqrtMin: "sqrtmin",
	SqrtMax: "sqrtmax",
	PowMin:  "powmin",
	PowMax:  "powmax",
	Rand:    "rand",
}

// Errors returned by Select and Plan.
var (
	ErrEmptyPrimes        = errors.New("prime: prime list is empty")
	ErrInvalidCount       = errors.New("prime: count must be >= 1")
	ErrInsufficientPrimes = errors.New("prime: not enough primes in range")
)

func (s Spacing) String() string {
	if s.Valid() {
		return spacingNames[s]
	}

	return "unknown"
}

// Valid reports whether s is one of the defined policies.
func (s Spacing) Valid() bool {
	return s >= LinMin && s <= Rand
}

// Spacings returns every policy in declaration order.
func Spacings() []Spacing {
	out := make([]Spacing, 0, len(spacingNames))
	for s := LinMin; s <= Rand; s++ {
		out = append(out, s)
	}

	return out
}

// ParseSpacing maps a policy name to a Spacing. Unknown names return
// DefaultSpacing and false.
func ParseSpacing(name string) (Spacing, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range spacingNames {
		if n == name {
			return Spacing(i), true
		}
	}

	return DefaultSpacing, false
}

// Select returns count primes chosen from primes by spacing.
//
// rng is only consulted by Rand; a nil rng falls back to a source seeded
// with 1 so results stay reproducible. Invalid policies behave as
// DefaultSpacing.
func Select(primes []int, count int, spacing Spacing, rng *rand.Rand) ([]int, error) {
	if len(primes) == 0 {
		return nil, ErrEmptyPrimes
	}

	if count < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	if count > len(primes) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrInsufficientPrimes, count, len(primes))
	}

	if !spacing.Valid() {
		spacing = DefaultSpacing
	}

	if spacing == Rand {
		return selectRandom(primes, count, rng), nil
	}

	out := make([]int, count)
	for i := range out {
		out[i] = primes[spacedIndex(spacing, i, count, len(primes))]
	}

	return out, nil
}

// spacedIndex returns the clamped list index of the i-th of count picks.
func spacedIndex(spacing Spacing, i, count, length int) int {
	last := length - 1
	x := float64(i) / float64(count)

	var idx int
	switch spacing {
	case LinMin:
		idx = (length / count) * i
	case LinMax:
		idx = last - (length/count)*i
	case ExpMin:
		idx = int(expCurve(x) * float64(length))
	case ExpMax:
		idx = last - int(expCurve(x)*float64(length))
	case SqrtMin:
		idx = int(math.Sqrt(x) * float64(length))
	case SqrtMax:
		idx = last - int(math.Sqrt(x)*float64(length))
	case PowMin:
		idx = int(powCurve(x) * float64(length))
	case PowMax:
		idx = last - int(powCurve(x)*float64(length))
	default:
		idx = (length / count) * i
	}

	return core.ClampInt(idx, 0, last)
}

func expCurve(x float64) float64 {
	return (math.Exp(x) - 1) / (math.E - 1)
}

func powCurve(x float64) float64 {
	return (math.Pow(10, x) - 1) / 9
}

func selectRandom(primes []int, count int, rng *rand.Rand) []int {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	perm := rng.Perm(len(primes))
	out := make([]int, count)
	for i := range out {
		out[i] = primes[perm[i]]
	}

	return out
}
