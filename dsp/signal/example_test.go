package signal_test

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
	"github.com/cwbudde/algo-matrixverb/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator(core.WithSampleRate(1000))
	x, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}
	if math.Abs(x[4]) < 1e-12 {
		x[4] = 0
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleGenerator_Blocks() {
	g := signal.NewGenerator(core.WithBlockSize(256))

	_ = g.Blocks(600, func(start, end int) error {
		fmt.Println(start, end)
		return nil
	})

	// Output:
	// 0 256
	// 256 512
	// 512 600
}

func ExampleRandomLine() {
	mod, err := signal.NewRandomLine(48000, 0.97, 1.03, 1, rand.New(rand.NewSource(3)))
	if err != nil {
		panic(err)
	}

	inRange := true
	for range 48000 {
		v := mod.Next()
		inRange = inRange && v >= 0.97 && v <= 1.03
	}
	fmt.Println("in range:", inRange)

	// Output:
	// in range: true
}
