// Package ir measures impulse responses rendered by reverberators.
//
// Analyzer derives the ISO 3382 decay and energy parameters from the
// Schroeder backward integral of the squared response:
//
//   - RT60, T20, T30: reverberation time from the decay slope
//   - EDT: early decay time (0 to -10 dB)
//   - C50, C80, D50, D80: clarity and definition
//   - CenterTime: temporal energy centroid
//
// EchoDensity tracks how quickly sparse early echoes build up into a diffuse
// tail, and BandDecay splits the response into low and high band energies
// per FFT frame to show how fast high frequencies are damped.
//
//	analyzer := ir.NewAnalyzer(48000)
//	metrics, err := analyzer.Analyze(response)
//	fmt.Printf("RT60 = %.2f s, C80 = %.1f dB\n", metrics.RT60, metrics.C80)
package ir
