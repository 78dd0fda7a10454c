package pass_test

import (
	"fmt"

	"github.com/cwbudde/algo-matrixverb/dsp/filter/design/pass"
)

func ExampleButterworthLP() {
	sr := 48000.0
	sections := pass.ButterworthLP(1000, 4, sr)

	var db float64
	for i := range sections {
		db += sections[i].MagnitudeDB(1000, sr)
	}
	fmt.Printf("sections: %d\n", len(sections))
	fmt.Printf("cutoff: %.1f dB\n", db)
	// Output:
	// sections: 2
	// cutoff: -3.0 dB
}
