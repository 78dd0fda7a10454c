// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (good default for modulated delays)
//
// [Mix] is the crossfade form used for dry/wet and depth balances; it is
// exact at both ends of its control range.
//
// The [Mode] enum lets [delay.Line] readers pick the method at construction time.
package interp
