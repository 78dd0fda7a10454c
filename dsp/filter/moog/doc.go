// Package moog implements a nonlinear four-pole ladder lowpass.
//
// Each pole is a tanh-saturated one-pole integrator. Cutoff tuning and
// resonance compensation follow Huovilainen's polynomial fits, and the
// feedback tap averages the last two outputs of the final pole.
//
// At zero resonance the ladder has unity gain at DC and rolls off at
// 24 dB/octave, so it can sit inside a feedback loop as a steep damper.
// The fastmath build tag swaps the saturator for an algo-approx tanh.
package moog
