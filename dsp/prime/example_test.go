package prime_test

import (
	"fmt"

	"github.com/cwbudde/algo-matrixverb/dsp/prime"
)

func ExampleGenerate() {
	fmt.Println(prime.Generate(10, 30))

	// Output:
	// [11 13 17 19 23 29]
}

func ExampleSelect() {
	primes := prime.Generate(10, 30)

	lin, _ := prime.Select(primes, 3, prime.LinMin, nil)
	sqrt, _ := prime.Select(primes, 3, prime.SqrtMax, nil)
	fmt.Println(lin, sqrt)

	// Output:
	// [11 17 23] [29 17 13]
}
