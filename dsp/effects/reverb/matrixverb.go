package reverb

import (
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
	"github.com/cwbudde/algo-matrixverb/dsp/filter/onepole"
	"github.com/cwbudde/algo-matrixverb/dsp/prime"
)

// ErrBlockShape is returned by ProcessBlock for mismatched buffers.
var ErrBlockShape = errors.New("reverb: block shape mismatch")

// MatrixVerb is a stereo reverb built from a prime-spaced early
// reflection cascade and a rotating-matrix feedback delay network.
//
// Processing methods are not safe for concurrent use. SetParams and the
// parameter setters may be called from any goroutine; published values
// take effect at the start of the next frame or block.
type MatrixVerb struct {
	sampleRate  float64
	quality     int
	filterOrder int
	fadeSeconds float64
	maxModDepth float64

	echo   prime.Delays
	matrix prime.Delays

	prefilter *onepole.Lowpass
	early     *EarlyReflections
	network   *Network
	mixer     *Mixer
	fader     *InputFader

	pending atomic.Pointer[Params]
	applied *Params

	frame                  []float64
	dryL, dryR, wetL, wetR []float64
}

// New constructs a MatrixVerb at sampleRate.
func New(sampleRate float64, opts ...Option) (*MatrixVerb, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("reverb: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	planCfg := prime.PlanConfig{MaxExtensions: cfg.maxExtensions, Rand: rng}

	echo, err := prime.Plan(cfg.echoRange, cfg.echoCount, cfg.echoSpacing, sampleRate, planCfg)
	if err != nil {
		return nil, fmt.Errorf("reverb: early reflection delays: %w", err)
	}

	matrix, err := prime.Plan(cfg.matrixRange, 1<<cfg.quality, cfg.matrixSpacing, sampleRate, planCfg)
	if err != nil {
		return nil, fmt.Errorf("reverb: network delays: %w", err)
	}

	params := cfg.params.clamped(sampleRate, cfg.maxModDepth)

	prefilter, err := onepole.New(sampleRate, params.CrossoverHz)
	if err != nil {
		return nil, err
	}

	early, err := NewEarlyReflections(echo.Samples)
	if err != nil {
		return nil, err
	}

	network, err := NewNetwork(sampleRate, NetworkConfig{
		Delays:      matrix.Samples,
		FilterOrder: cfg.filterOrder,
		MaxModDepth: cfg.maxModDepth,
		Seed:        cfg.seed,
	})
	if err != nil {
		return nil, err
	}

	v := &MatrixVerb{
		sampleRate:  sampleRate,
		quality:     cfg.quality,
		filterOrder: cfg.filterOrder,
		fadeSeconds: cfg.fadeSeconds,
		maxModDepth: cfg.maxModDepth,
		echo:        echo,
		matrix:      matrix,
		prefilter:   prefilter,
		early:       early,
		network:     network,
		mixer:       NewMixer(params.Depth, params.Balance),
		fader:       NewInputFader(sampleRate),
		frame:       make([]float64, 1),
	}

	v.pending.Store(&params)
	v.applyPending()

	return v, nil
}

// SampleRate returns the sample rate in Hz.
func (v *MatrixVerb) SampleRate() float64 { return v.sampleRate }

// Quality returns the effective (clamped) quality.
func (v *MatrixVerb) Quality() int { return v.quality }

// FilterOrder returns the damping filter order.
func (v *MatrixVerb) FilterOrder() int { return v.filterOrder }

// NumDelays returns the number of network delay lines, 2^Quality().
func (v *MatrixVerb) NumDelays() int { return v.network.Size() }

// EchoDelays returns the early reflection stage delays in samples.
func (v *MatrixVerb) EchoDelays() []int { return append([]int(nil), v.echo.Samples...) }

// EchoSeconds returns the early reflection stage delays in seconds.
func (v *MatrixVerb) EchoSeconds() []float64 { return append([]float64(nil), v.echo.Seconds...) }

// MatrixDelays returns the network line lengths in samples.
func (v *MatrixVerb) MatrixDelays() []int { return append([]int(nil), v.matrix.Samples...) }

// MatrixSeconds returns the network line lengths in seconds.
func (v *MatrixVerb) MatrixSeconds() []float64 { return append([]float64(nil), v.matrix.Seconds...) }

// TailLatency returns the number of samples after the input stops before
// a reverb with zero liveness is silent: the early cascade length plus the
// longest network buffer.
func (v *MatrixVerb) TailLatency() int {
	return v.early.TotalDelay() + v.network.MaxLineLength()
}

// Params returns the most recently published parameters.
func (v *MatrixVerb) Params() Params { return *v.pending.Load() }

// SetParams publishes a new parameter snapshot. Out-of-range values are
// clamped.
func (v *MatrixVerb) SetParams(p Params) {
	p = p.clamped(v.sampleRate, v.maxModDepth)
	v.pending.Store(&p)
}

// SetLiveness sets the feedback amount in [0, 1].
func (v *MatrixVerb) SetLiveness(x float64) { v.update(func(p *Params) { p.Liveness = x }) }

// SetDepth sets the early/late balance in [0, 1].
func (v *MatrixVerb) SetDepth(x float64) { v.update(func(p *Params) { p.Depth = x }) }

// SetCrossover sets the damping cutoff in Hz.
func (v *MatrixVerb) SetCrossover(hz float64) { v.update(func(p *Params) { p.CrossoverHz = hz }) }

// SetHighDamp sets the damping strength in [0, 1].
func (v *MatrixVerb) SetHighDamp(x float64) { v.update(func(p *Params) { p.HighDamp = x }) }

// SetBalance sets the dry/wet balance in [0, 1].
func (v *MatrixVerb) SetBalance(x float64) { v.update(func(p *Params) { p.Balance = x }) }

// SetModDepth sets the relative modulation depth.
func (v *MatrixVerb) SetModDepth(x float64) { v.update(func(p *Params) { p.ModDepth = x }) }

// SetModSpeed sets the base modulation rate in Hz.
func (v *MatrixVerb) SetModSpeed(hz float64) { v.update(func(p *Params) { p.ModSpeedHz = hz }) }

func (v *MatrixVerb) update(fn func(*Params)) {
	for {
		old := v.pending.Load()
		next := *old
		fn(&next)
		next = next.clamped(v.sampleRate, v.maxModDepth)

		if v.pending.CompareAndSwap(old, &next) {
			return
		}
	}
}

func (v *MatrixVerb) applyPending() {
	p := v.pending.Load()
	if p == v.applied {
		return
	}

	v.prefilter.SetCutoffHz(p.CrossoverHz)
	v.network.SetCrossover(p.CrossoverHz)
	v.network.SetHighDamp(p.HighDamp)
	v.network.SetLiveness(p.Liveness)
	v.network.SetModulation(p.ModDepth, p.ModSpeedHz)
	v.mixer.SetDepth(p.Depth)
	v.mixer.SetBalance(p.Balance)

	v.applied = p
}

// SetInput crossfades the pull source used by Render to src over
// fadeSeconds, clamped to >= 0. A nil src fades to silence.
func (v *MatrixVerb) SetInput(src Source, fadeSeconds float64) {
	v.fader.SetInput(src, fadeSeconds)
	v.frame = core.EnsureLen(v.frame, v.fader.Channels())
}

// SetSource is SetInput with the fade time configured by WithFadeTime.
func (v *MatrixVerb) SetSource(src Source) {
	v.SetInput(src, v.fadeSeconds)
}

// FadeTime returns the configured default fade time in seconds.
func (v *MatrixVerb) FadeTime() float64 { return v.fadeSeconds }

// Input returns the current pull source.
func (v *MatrixVerb) Input() Source { return v.fader.Input() }

// ProcessFrame processes one interleaved input frame of any width.
func (v *MatrixVerb) ProcessFrame(frame []float64) (left, right float64) {
	v.applyPending()
	return v.processFrame(frame)
}

// ProcessBlock processes interleaved src with the given channel count into
// planar stereo dstL and dstR. len(src) must equal len(dstL)*channels.
func (v *MatrixVerb) ProcessBlock(dstL, dstR, src []float64, channels int) error {
	if channels < 1 {
		return fmt.Errorf("%w: channels must be >= 1: %d", ErrBlockShape, channels)
	}

	if len(dstL) != len(dstR) {
		return fmt.Errorf("%w: output lengths differ: %d != %d", ErrBlockShape, len(dstL), len(dstR))
	}

	if len(src) != len(dstL)*channels {
		return fmt.Errorf("%w: input length %d, want %d frames of %d channels",
			ErrBlockShape, len(src), len(dstL), channels)
	}

	v.applyPending()

	n := len(dstL)
	v.dryL = core.EnsureLen(v.dryL, n)
	v.dryR = core.EnsureLen(v.dryR, n)
	v.wetL = core.EnsureLen(v.wetL, n)
	v.wetR = core.EnsureLen(v.wetR, n)

	for i := range n {
		frame := src[i*channels : (i+1)*channels]
		v.dryL[i], v.dryR[i] = upmix(frame)
		v.wetL[i], v.wetR[i] = v.wet(downmix(frame))
	}

	v.mixer.MixBlock(dstL, dstR, v.dryL[:n], v.dryR[:n], v.wetL[:n], v.wetR[:n])

	return nil
}

// Render pulls len(dstL) frames from the current Source and processes
// them. dstL and dstR must have the same length.
func (v *MatrixVerb) Render(dstL, dstR []float64) {
	v.applyPending()

	n := min(len(dstL), len(dstR))
	for i := range n {
		c := v.fader.Next(v.frame)
		dstL[i], dstR[i] = v.processFrame(v.frame[:c])
	}
}

// Reset clears all signal state. Parameters and the input source are kept.
func (v *MatrixVerb) Reset() {
	v.prefilter.Reset()
	v.early.Reset()
	v.network.Reset()
}

func (v *MatrixVerb) processFrame(frame []float64) (left, right float64) {
	dryL, dryR := upmix(frame)
	wetL, wetR := v.wet(downmix(frame))

	return v.mixer.Mix(dryL, dryR, wetL, wetR)
}

func (v *MatrixVerb) wet(mono float64) (left, right float64) {
	x := v.prefilter.ProcessSample(mono)
	re, im := v.early.Process(x)
	y0, y1 := v.network.Process(re, im)

	return v.mixer.Wet(re, im, y0, y1)
}

// downmix sums all channels.
func downmix(frame []float64) float64 {
	var sum float64
	for _, x := range frame {
		sum += x
	}

	return sum
}

// upmix folds channel c onto output c%2. A mono frame feeds both sides.
func upmix(frame []float64) (left, right float64) {
	switch len(frame) {
	case 0:
		return 0, 0
	case 1:
		return frame[0], frame[0]
	}

	for c, x := range frame {
		if c%2 == 0 {
			left += x
		} else {
			right += x
		}
	}

	return left, right
}
