package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
	"github.com/cwbudde/algo-matrixverb/dsp/interp"
)

// DefaultFadeSeconds is the crossfade length used by SetInput when no
// other time is configured.
const DefaultFadeSeconds = 0.05

// Source supplies interleaved input frames for pull-mode rendering.
type Source interface {
	// Channels returns the frame width; it must not change.
	Channels() int
	// Read fills frame, whose length equals Channels(), with the next frame.
	Read(frame []float64)
}

// SliceSource plays an interleaved buffer once and then silence.
type SliceSource struct {
	data     []float64
	channels int
	pos      int
}

// NewSliceSource wraps interleaved data with the given channel count.
func NewSliceSource(data []float64, channels int) (*SliceSource, error) {
	if channels < 1 {
		return nil, fmt.Errorf("reverb: source channels must be >= 1: %d", channels)
	}

	if len(data)%channels != 0 {
		return nil, fmt.Errorf("reverb: source length %d is not a multiple of %d channels", len(data), channels)
	}

	return &SliceSource{data: data, channels: channels}, nil
}

// Channels returns the frame width.
func (s *SliceSource) Channels() int { return s.channels }

// Read copies the next frame, or zeros once the buffer is exhausted.
func (s *SliceSource) Read(frame []float64) {
	if s.pos >= len(s.data) {
		core.Zero(frame)
		return
	}

	copy(frame, s.data[s.pos:s.pos+s.channels])
	s.pos += s.channels
}

// Done reports whether every frame has been read.
func (s *SliceSource) Done() bool { return s.pos >= len(s.data) }

// Rewind restarts playback from the first frame.
func (s *SliceSource) Rewind() { s.pos = 0 }

// FuncSource adapts a frame generator function.
type FuncSource struct {
	channels int
	fn       func(frame []float64)
}

// NewFuncSource wraps fn, which is called once per frame.
func NewFuncSource(channels int, fn func(frame []float64)) (*FuncSource, error) {
	if channels < 1 {
		return nil, fmt.Errorf("reverb: source channels must be >= 1: %d", channels)
	}

	if fn == nil {
		return nil, fmt.Errorf("reverb: source function is nil")
	}

	return &FuncSource{channels: channels, fn: fn}, nil
}

// Channels returns the frame width.
func (s *FuncSource) Channels() int { return s.channels }

// Read calls the wrapped function.
func (s *FuncSource) Read(frame []float64) { s.fn(frame) }

// InputFader crossfades linearly between the previous and current source.
// A nil source is silence.
type InputFader struct {
	sampleRate float64

	cur, prev Source
	fadeLen   int
	fadePos   int

	curBuf, prevBuf []float64
}

// NewInputFader returns a fader reading silence.
func NewInputFader(sampleRate float64) *InputFader {
	return &InputFader{
		sampleRate: sampleRate,
		curBuf:     make([]float64, 1),
		prevBuf:    make([]float64, 1),
	}
}

// SetInput switches to src over fadeSeconds (clamped to >= 0). A fade
// already in progress is abandoned and its older source dropped.
func (f *InputFader) SetInput(src Source, fadeSeconds float64) {
	if !core.IsFinite(fadeSeconds) || fadeSeconds < 0 {
		fadeSeconds = 0
	}

	f.prev = f.cur
	f.cur = src
	f.fadeLen = int(math.Round(fadeSeconds * f.sampleRate))
	f.fadePos = 0

	if f.fadeLen == 0 {
		f.prev = nil
	}

	n := f.Channels()
	if cap(f.curBuf) < n {
		f.curBuf = make([]float64, n)
		f.prevBuf = make([]float64, n)
	}
}

// Input returns the current source.
func (f *InputFader) Input() Source { return f.cur }

// Fading reports whether a crossfade is in progress.
func (f *InputFader) Fading() bool { return f.prev != nil }

// Channels returns the width of frames produced by Next.
func (f *InputFader) Channels() int {
	return max(sourceChannels(f.cur), sourceChannels(f.prev))
}

// Next writes the next faded frame into frame[:Channels()] and returns the
// channel count. Channels missing from the narrower source read as 0.
func (f *InputFader) Next(frame []float64) int {
	n := f.Channels()
	out := frame[:n]

	cur := f.curBuf[:n]
	readPadded(f.cur, cur)

	if f.prev == nil {
		copy(out, cur)
		return n
	}

	prev := f.prevBuf[:n]
	readPadded(f.prev, prev)

	f.fadePos++
	t := float64(f.fadePos) / float64(f.fadeLen)

	for i := range out {
		out[i] = interp.Mix(prev[i], cur[i], t)
	}

	if f.fadePos >= f.fadeLen {
		f.prev = nil
	}

	return n
}

func sourceChannels(s Source) int {
	if s == nil {
		return 1
	}

	return s.Channels()
}

func readPadded(s Source, buf []float64) {
	if s == nil {
		core.Zero(buf)
		return
	}

	c := s.Channels()
	s.Read(buf[:c])
	core.Zero(buf[c:])
}
