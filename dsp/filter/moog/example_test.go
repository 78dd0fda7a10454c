package moog_test

import (
	"fmt"

	"github.com/cwbudde/algo-matrixverb/dsp/filter/moog"
)

func ExampleNew() {
	f, err := moog.New(48000, moog.WithCutoffHz(3500))
	if err != nil {
		panic(err)
	}

	var y float64
	for range 4800 {
		y = f.ProcessSample(0.25)
	}

	fmt.Printf("cutoff=%.0f dc=%.4f\n", f.CutoffHz(), y)
	// Output:
	// cutoff=3500 dc=0.2500
}
