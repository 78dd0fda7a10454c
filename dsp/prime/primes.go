package prime

// Generate returns all primes p with min < p < max in increasing order.
//
// Candidates are tested by trial division against the primes found so
// far, stopping at the square root of the candidate.
func Generate(min, max int) []int {
	if max <= 2 {
		return nil
	}

	found := []int{2}
	for candidate := 3; candidate < max; candidate += 2 {
		if isPrimeAgainst(candidate, found) {
			found = append(found, candidate)
		}
	}

	start := 0
	for start < len(found) && found[start] <= min {
		start++
	}

	return found[start:]
}

func isPrimeAgainst(candidate int, primes []int) bool {
	for _, p := range primes {
		if p*p > candidate {
			return true
		}
		if candidate%p == 0 {
			return false
		}
	}

	return true
}
