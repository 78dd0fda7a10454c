// Package reverb implements MatrixVerb, a prime-spaced rotating-matrix
// feedback delay network reverb.
//
// Signal flow per frame:
//
//	input → downmix → tone prefilter → EarlyReflections → Network → Mixer → stereo
//
// [EarlyReflections] is a cascade of rotate-and-delay stages whose final
// pair seeds the first two inputs of the [Network]. The network holds
// 2^quality modulated delay lines with prime lengths, a damping lowpass per
// line, and a Hadamard butterfly (rotation.Matrix) that mixes every line
// into every other on each pass. [Mixer] blends early and late energy and
// the dry signal into the stereo output.
//
// [MatrixVerb] composes these parts. Construction-time structure (echo
// count, quality, filter order, delay ranges and spacing policies) is fixed
// by functional options; runtime [Params] are published as atomic snapshots
// and applied at the start of each frame or block.
package reverb
