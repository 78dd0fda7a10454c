package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
	"github.com/cwbudde/algo-matrixverb/dsp/interp"
)

// Option configures a Line.
type Option func(*Line)

// WithMode selects how ReadFractional interpolates. Hermite is the default.
func WithMode(mode interp.Mode) Option {
	return func(l *Line) { l.mode = mode }
}

// Line is a fixed-size ring buffer.
//
// Delays count writes: Read(1) is the newest sample and Read(Len()) the
// oldest. Reading before writing the current input yields x[n-d].
type Line struct {
	buf  []float64
	pos  int // next write slot
	mode interp.Mode
}

// New returns a line holding size samples.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay: size must be > 0: %d", size)
	}

	l := &Line{buf: make([]float64, size)}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	return l, nil
}

// NewForDuration returns a line holding seconds of audio at sampleRate plus
// the three extra samples a Hermite read at the longest delay touches.
func NewForDuration(seconds, sampleRate float64, opts ...Option) (*Line, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("delay: sample rate must be > 0: %f", sampleRate)
	}

	if !core.IsFinite(seconds) || seconds <= 0 {
		return nil, fmt.Errorf("delay: duration must be > 0: %f", seconds)
	}

	return New(int(math.Ceil(seconds*sampleRate))+3, opts...)
}

// Len returns the capacity in samples.
func (l *Line) Len() int { return len(l.buf) }

// Mode returns the interpolation mode.
func (l *Line) Mode() interp.Mode { return l.mode }

// MaxFractionalDelay is the longest delay ReadFractional serves unclamped.
// Hermite needs one more tap behind the read point than linear does.
func (l *Line) MaxFractionalDelay() float64 {
	if l.mode == interp.ModeLinear {
		return float64(len(l.buf) - 1)
	}

	return float64(len(l.buf) - 2)
}

// Write appends one sample, overwriting the oldest.
func (l *Line) Write(x float64) {
	l.buf[l.pos] = x

	if l.pos++; l.pos == len(l.buf) {
		l.pos = 0
	}
}

// Read returns the sample written d writes ago, with d clamped to
// [1, Len()].
func (l *Line) Read(d int) float64 {
	i := l.pos - core.ClampInt(d, 1, len(l.buf))
	if i < 0 {
		i += len(l.buf)
	}

	return l.buf[i]
}

// ReadFractional returns the interpolated sample d writes ago. d is clamped
// to [1, MaxFractionalDelay()]; NaN reads as 1.
func (l *Line) ReadFractional(d float64) float64 {
	if !(d >= 1) {
		d = 1
	}

	d = math.Min(d, l.MaxFractionalDelay())

	whole := math.Floor(d)
	frac := d - whole
	p := int(whole)

	if l.mode == interp.ModeLinear {
		return interp.Linear2(frac, l.Read(p), l.Read(p+1))
	}

	return interp.Hermite4(frac, l.Read(p-1), l.Read(p), l.Read(p+1), l.Read(p+2))
}

// Reset zeroes the buffer and rewinds the write slot.
func (l *Line) Reset() {
	core.Zero(l.buf)
	l.pos = 0
}
