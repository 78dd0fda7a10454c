package rotation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Matrix is a power-of-two butterfly mixer.
type Matrix struct {
	size  int
	scale float64
}

// New returns a matrix for size inputs. size must be a power of two >= 2.
func New(size int) (*Matrix, error) {
	if !IsPowerOfTwo(size) || size < 2 {
		return nil, fmt.Errorf("rotation: size must be a power of two >= 2: %d", size)
	}

	return &Matrix{size: size, scale: 1 / math.Sqrt(float64(size))}, nil
}

// ForOrder returns a matrix of size 2^order.
func ForOrder(order int) (*Matrix, error) {
	if order < 1 || order > 30 {
		return nil, fmt.Errorf("rotation: order must be in [1, 30]: %d", order)
	}

	return New(1 << order)
}

// Size returns the number of inputs and outputs.
func (m *Matrix) Size() int { return m.size }

// Scale returns 1/sqrt(Size()), the factor that makes the transform orthonormal.
func (m *Matrix) Scale() float64 { return m.scale }

// Transform applies the butterfly to buf in place. len(buf) must equal Size().
//
// Stage h combines elements h apart, so after the last stage element i
// holds the recursive [h1+h2, h1-h2] ordering.
func (m *Matrix) Transform(buf []float64) {
	n := m.size
	_ = buf[n-1]

	for h := 1; h < n; h <<= 1 {
		for start := 0; start < n; start += h << 1 {
			for j := start; j < start+h; j++ {
				a, b := buf[j], buf[j+h]
				buf[j] = a + b
				buf[j+h] = a - b
			}
		}
	}
}

// TransformNormalized applies the butterfly scaled by 1/sqrt(Size()).
func (m *Matrix) TransformNormalized(buf []float64) {
	m.Transform(buf)
	for i := range buf[:m.size] {
		buf[i] *= m.scale
	}
}

// TransformTo writes the butterfly of src into dst without touching src.
func (m *Matrix) TransformTo(dst, src []float64) {
	copy(dst[:m.size], src[:m.size])
	m.Transform(dst)
}

// Energy returns the sum of squares of x.
func Energy(x []float64) float64 {
	return vecmath.DotProduct(x, x)
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
