// Package signal provides deterministic test signals and low-rate random
// modulators.
//
// [Generator] renders impulses, sines and seeded noise at the rate given by
// core processor options, and walks long buffers in block-size steps.
// [RandomLine] interpolates linearly between random points drawn at a fixed
// rate; the reverb uses it to wobble delay times.
package signal
