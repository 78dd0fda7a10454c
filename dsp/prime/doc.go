// Package prime plans delay-line lengths from prime sample counts.
//
// Mutually prime delay lengths keep the echo patterns of parallel delay
// lines from lining up, which is what makes a feedback delay network sound
// dense instead of metallic. The package has three layers:
//
//   - [Generate] lists the primes inside an open sample-count interval.
//   - [Select] picks a fixed number of them according to a [Spacing] policy.
//   - [Plan] converts a time range in seconds to samples, widens the range
//     when it holds too few primes, and returns the selected delays in both
//     samples and seconds.
//
// Spacing policies bias the selection toward the short end (the *Min
// variants), the long end (*Max) or spread it linearly. [Rand] draws
// without replacement from a caller-supplied source.
package prime
