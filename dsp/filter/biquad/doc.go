// Package biquad runs second-order IIR sections.
//
// Coefficient design lives in dsp/filter/design/pass.
package biquad
