// Package pass designs lowpass biquad coefficients.
//
// [LowpassRBJ] is the audio EQ cookbook lowpass. [ButterworthLP] cascades
// such sections at Butterworth pole Qs, closing odd orders with a
// first-order bilinear section.
package pass
