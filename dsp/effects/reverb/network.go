package reverb

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
	"github.com/cwbudde/algo-matrixverb/dsp/delay"
	"github.com/cwbudde/algo-matrixverb/dsp/rotation"
	"github.com/cwbudde/algo-matrixverb/dsp/signal"
)

const (
	// DefaultMaxModDepth is the largest accepted modulation depth. Delay
	// buffers are sized for it.
	DefaultMaxModDepth = 0.95

	minJitter = 0.5
	maxJitter = 2.0
)

// NetworkConfig describes the fixed structure of a Network.
type NetworkConfig struct {
	// Delays holds the base line lengths in samples. Its length must be a
	// power of two >= 2.
	Delays []int
	// FilterOrder selects the damping lowpass (1, 2 or 4).
	FilterOrder int
	// MaxModDepth bounds SetModulation depth; zero selects DefaultMaxModDepth.
	MaxModDepth float64
	// Seed drives per-line modulation rate jitter and the modulators.
	Seed int64
}

// Network is the feedback delay network producing the late tail.
//
// Each sample it reads every line at its modulated length, damps the
// result, scales it by the feedback gain, adds the injection on lines 0
// and 1, mixes all lines through the butterfly and writes the mix back.
type Network struct {
	sampleRate  float64
	order       int
	filterOrder int

	base    []float64
	lines   []*delay.Line
	dampers []damper
	mods    []*signal.RandomLine
	jitter  []float64
	matrix  *rotation.Matrix
	fb      []float64

	modSeed int64
	modRand *rand.Rand

	compensation float64
	liveness     float64
	gain         float64
	highDamp     float64
	crossoverHz  float64
	maxModDepth  float64
	modDepth     float64
	modSpeedHz   float64
}

// NewNetwork builds a network with default runtime controls.
func NewNetwork(sampleRate float64, cfg NetworkConfig) (*Network, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("reverb: sample rate must be > 0: %f", sampleRate)
	}

	size := len(cfg.Delays)
	matrix, err := rotation.New(size)
	if err != nil {
		return nil, fmt.Errorf("reverb: network: %w", err)
	}

	maxModDepth := cfg.MaxModDepth
	if maxModDepth == 0 {
		maxModDepth = DefaultMaxModDepth
	}

	if !core.IsFinite(maxModDepth) || maxModDepth < 0 || maxModDepth >= 1 {
		return nil, fmt.Errorf("reverb: max modulation depth must be in [0, 1): %v", maxModDepth)
	}

	d := DefaultParams()
	n := &Network{
		sampleRate:  sampleRate,
		order:       bits.TrailingZeros(uint(size)),
		filterOrder: NormalizeFilterOrder(cfg.FilterOrder),
		base:        make([]float64, size),
		lines:       make([]*delay.Line, size),
		dampers:     make([]damper, size),
		mods:        make([]*signal.RandomLine, size),
		jitter:      make([]float64, size),
		matrix:      matrix,
		fb:          make([]float64, size),
		modSeed:     cfg.Seed + 1,
		maxModDepth: maxModDepth,
		crossoverHz: clampCrossover(d.CrossoverHz, sampleRate),
		highDamp:    d.HighDamp,
	}

	n.compensation = compensationGain(n.order, n.filterOrder)
	n.modRand = rand.New(rand.NewSource(n.modSeed))
	jitterRand := rand.New(rand.NewSource(cfg.Seed))

	for i, samples := range cfg.Delays {
		if samples < 1 {
			return nil, fmt.Errorf("reverb: line %d length must be >= 1: %d", i, samples)
		}

		n.base[i] = float64(samples)

		// Room for the longest modulated read plus the Hermite taps.
		capacity := int(math.Ceil(n.base[i]*(1+maxModDepth))) + 3

		n.lines[i], err = delay.New(capacity)
		if err != nil {
			return nil, fmt.Errorf("reverb: line %d: %w", i, err)
		}

		n.dampers[i], err = newDamper(n.filterOrder, sampleRate, n.crossoverHz)
		if err != nil {
			return nil, err
		}

		n.jitter[i] = minJitter + (maxJitter-minJitter)*jitterRand.Float64()

		n.mods[i], err = signal.NewRandomLine(sampleRate, 1, 1, 0, n.modRand)
		if err != nil {
			return nil, err
		}
	}

	n.SetLiveness(d.Liveness)
	n.SetModulation(d.ModDepth, d.ModSpeedHz)

	return n, nil
}

// compensationGain offsets the butterfly's growth of 3.01 dB per stage
// (4.01 dB with the ladder damper, which rings near cutoff).
func compensationGain(order, filterOrder int) float64 {
	perStage := 3.01
	if filterOrder == FilterOrder4 {
		perStage = 4.01
	}

	return core.DBToLinear(-perStage * float64(order))
}

// Size returns the number of delay lines.
func (n *Network) Size() int { return len(n.lines) }

// Order returns log2(Size()).
func (n *Network) Order() int { return n.order }

// FilterOrder returns the damping filter order.
func (n *Network) FilterOrder() int { return n.filterOrder }

// Delays returns the base line lengths in samples.
func (n *Network) Delays() []int {
	out := make([]int, len(n.base))
	for i, b := range n.base {
		out[i] = int(b)
	}

	return out
}

// MaxLineLength returns the longest delay buffer in samples.
func (n *Network) MaxLineLength() int {
	longest := 0
	for _, l := range n.lines {
		longest = max(longest, l.Len())
	}

	return longest
}

// Jitter returns the fixed per-line modulation rate multipliers.
func (n *Network) Jitter() []float64 {
	return append([]float64(nil), n.jitter...)
}

// Compensation returns the fixed feedback compensation gain.
func (n *Network) Compensation() float64 { return n.compensation }

// Gain returns the effective loop gain clamp(liveness, 0, 1)·compensation.
func (n *Network) Gain() float64 { return n.gain }

// SetLiveness sets the feedback amount, clamped to [0, 1].
func (n *Network) SetLiveness(liveness float64) {
	n.liveness = core.Clamp01(liveness)
	n.gain = n.liveness * n.compensation
}

// SetCrossover retunes every damper. The cutoff is clamped to
// [MinCrossoverHz, MaxCrossoverRatio·fs].
func (n *Network) SetCrossover(hz float64) {
	if !core.IsFinite(hz) {
		return
	}

	hz = clampCrossover(hz, n.sampleRate)
	if hz == n.crossoverHz {
		return
	}

	n.crossoverHz = hz
	for _, d := range n.dampers {
		d.setCutoff(hz)
	}
}

// SetHighDamp sets the damping strength, clamped to [0, 1].
func (n *Network) SetHighDamp(amount float64) {
	n.highDamp = core.Clamp01(amount)
}

// SetModulation sets the relative depth, clamped to [0, MaxModDepth], and
// base speed (Hz, >= 0) of the line modulators. Each line runs at
// speed times its fixed jitter.
func (n *Network) SetModulation(depth, speedHz float64) {
	if !core.IsFinite(depth) {
		depth = 0
	}

	if !core.IsFinite(speedHz) || speedHz < 0 {
		speedHz = 0
	}

	n.modDepth = core.Clamp(depth, 0, n.maxModDepth)
	n.modSpeedHz = speedHz

	for i, m := range n.mods {
		m.SetRange(1-n.modDepth, 1+n.modDepth)
		m.SetFreq(n.modSpeedHz * n.jitter[i])
	}
}

// Process injects (re, im) into lines 0 and 1, advances one sample and
// returns the last two butterfly outputs.
func (n *Network) Process(re, im float64) (left, right float64) {
	fb := n.fb
	gain := n.gain
	damp := n.highDamp

	for i, line := range n.lines {
		out := line.ReadFractional(n.base[i] * n.mods[i].Next())
		lp := n.dampers[i].ProcessSample(out)
		fb[i] = (damp*(lp-out) + out) * gain
	}

	fb[0] += re
	fb[1] += im

	n.matrix.Transform(fb)

	for i, line := range n.lines {
		line.Write(core.FlushDenormals(fb[i]))
	}

	size := len(fb)

	return fb[size-2], fb[size-1]
}

// Reset clears all lines and filters and restarts the modulators from
// their initial random sequence.
func (n *Network) Reset() {
	n.modRand.Seed(n.modSeed)

	for i := range n.lines {
		n.lines[i].Reset()
		n.dampers[i].Reset()
		n.mods[i].Reset()
		n.fb[i] = 0
	}
}
