package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-matrixverb/dsp/delay"
	"github.com/cwbudde/algo-matrixverb/dsp/interp"
)

// rotateGain is the 45° rotation coefficient used by the early stages.
const rotateGain = 0.7071

// EarlyReflections is a cascade of rotate-and-delay stages.
//
// Each stage maps (a, b) to re = (a+b)·g and im = delay(a-b)·g, where g is
// rotateGain and the delay is that stage's length in samples. Stage 0 is
// driven by (x, 0) and stage j by the outputs of stage j-1.
type EarlyReflections struct {
	lines  []*delay.Line
	delays []int
}

// NewEarlyReflections builds one stage per entry of delays (in samples).
func NewEarlyReflections(delays []int) (*EarlyReflections, error) {
	if len(delays) == 0 {
		return nil, fmt.Errorf("reverb: early reflections need at least one stage")
	}

	e := &EarlyReflections{
		lines:  make([]*delay.Line, len(delays)),
		delays: append([]int(nil), delays...),
	}

	for i, d := range delays {
		line, err := delay.New(d, delay.WithMode(interp.ModeLinear))
		if err != nil {
			return nil, fmt.Errorf("reverb: early stage %d: %w", i, err)
		}

		e.lines[i] = line
	}

	return e, nil
}

// Stages returns the number of cascade stages.
func (e *EarlyReflections) Stages() int { return len(e.lines) }

// Delays returns a copy of the per-stage delays in samples.
func (e *EarlyReflections) Delays() []int {
	return append([]int(nil), e.delays...)
}

// TotalDelay returns the sum of all stage delays, the length of the
// cascade's impulse response.
func (e *EarlyReflections) TotalDelay() int {
	total := 0
	for _, d := range e.delays {
		total += d
	}

	return total
}

// Process runs one input sample through the cascade.
func (e *EarlyReflections) Process(x float64) (re, im float64) {
	re = x
	for i, line := range e.lines {
		a, b := re, im
		re = (a + b) * rotateGain
		im = line.Read(e.delays[i]) * rotateGain
		line.Write(a - b)
	}

	return re, im
}

// Reset clears all stage delay lines.
func (e *EarlyReflections) Reset() {
	for _, line := range e.lines {
		line.Reset()
	}
}
