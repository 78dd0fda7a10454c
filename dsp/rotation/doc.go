// Package rotation implements the orthogonal mixing matrix used in the
// feedback path of a delay network.
//
// The matrix is the Sylvester-Hadamard butterfly: for N=2 it maps
// [x0, x1] to [x0+x1, x0-x1]; for N=2k it transforms both halves and
// emits [h1+h2, h1-h2]. Every input reaches every output with equal
// weight. The raw transform scales energy by N and applying it twice
// yields N times the input, so callers fold 1/sqrt(N) into their own gain
// or use [Matrix.TransformNormalized].
package rotation
