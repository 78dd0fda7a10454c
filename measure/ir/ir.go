package ir

import (
	"errors"
	"math"
)

var (
	ErrEmptyIR           = errors.New("ir: empty impulse response")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be > 0")
	ErrInvalidTime       = errors.New("ir: boundary time must be > 0")
	ErrNoDecay           = errors.New("ir: response does not decay far enough to estimate RT60")
)

// schroederFloorDB is the value reported for fully decayed samples.
const schroederFloorDB = -200

// Metrics summarizes one impulse response.
type Metrics struct {
	RT60       float64 // reverberation time in seconds (T30, falling back to T20)
	EDT        float64 // early decay time in seconds (0 to -10 dB)
	T20        float64 // RT from the -5 to -25 dB slope
	T30        float64 // RT from the -5 to -35 dB slope
	C50        float64 // clarity at 50 ms in dB
	C80        float64 // clarity at 80 ms in dB
	D50        float64 // definition at 50 ms (ratio 0-1)
	D80        float64 // definition at 80 ms (ratio 0-1)
	CenterTime float64 // energy centroid in seconds
	PeakIndex  int     // sample index of the absolute maximum
}

// Analyzer computes decay and energy metrics of impulse responses rendered
// at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer returns an analyzer for responses sampled at sampleRate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all metrics. Energy ratios and decay times are measured
// from the absolute peak onwards.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.check(ir); err != nil {
		return Metrics{}, err
	}

	peak := peakIndex(ir)
	tail := ir[peak:]
	curve := schroeder(tail)

	m := Metrics{
		PeakIndex:  peak,
		CenterTime: a.centerTime(tail),
		EDT:        a.decayTime(curve, 0, -10),
		T20:        a.decayTime(curve, -5, -25),
		T30:        a.decayTime(curve, -5, -35),
	}

	m.D50, m.C50 = a.split(tail, 50)
	m.D80, m.C80 = a.split(tail, 80)

	m.RT60 = m.T30
	if m.RT60 <= 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// SchroederIntegral returns the backward-integrated energy decay curve in dB,
// normalized to 0 dB at the first sample.
//
//	S(t) = 10*log10( ∫_t^∞ h²(τ)dτ / ∫_0^∞ h²(τ)dτ )
func (a *Analyzer) SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return schroeder(ir), nil
}

// RT60 estimates the -60 dB decay time from the T30 slope, or from the T20
// slope when the response does not decay by 35 dB.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	curve := schroeder(ir)

	if rt := a.decayTime(curve, -5, -35); rt > 0 {
		return rt, nil
	}

	if rt := a.decayTime(curve, -5, -25); rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}

// Definition returns the fraction of total energy arriving before timeMs.
func (a *Analyzer) Definition(ir []float64, timeMs float64) (float64, error) {
	if err := a.checkTime(ir, timeMs); err != nil {
		return 0, err
	}

	d, _ := a.split(ir, timeMs)

	return d, nil
}

// Clarity returns the early-to-late energy ratio at timeMs in dB.
func (a *Analyzer) Clarity(ir []float64, timeMs float64) (float64, error) {
	if err := a.checkTime(ir, timeMs); err != nil {
		return 0, err
	}

	_, c := a.split(ir, timeMs)

	return c, nil
}

// CenterTime returns the temporal energy centroid in seconds.
func (a *Analyzer) CenterTime(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	return a.centerTime(ir), nil
}

// FindImpulseStart returns the first index whose magnitude reaches 10% of
// the peak (-20 dB).
func (a *Analyzer) FindImpulseStart(ir []float64) (int, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	threshold := 0.1 * math.Abs(ir[peakIndex(ir)])
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i, nil
		}
	}

	return 0, nil
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}

	if !(a.SampleRate > 0) {
		return ErrInvalidSampleRate
	}

	return nil
}

func (a *Analyzer) checkTime(ir []float64, timeMs float64) error {
	if err := a.check(ir); err != nil {
		return err
	}

	if !(timeMs > 0) {
		return ErrInvalidTime
	}

	return nil
}

// split returns the definition ratio and the clarity in dB at timeMs.
func (a *Analyzer) split(ir []float64, timeMs float64) (definition, clarity float64) {
	boundary := int(math.Round(timeMs * 0.001 * a.SampleRate))

	switch {
	case boundary <= 0:
		return 0, math.Inf(-1)
	case boundary >= len(ir):
		return 1, math.Inf(1)
	}

	var early, late float64
	for _, v := range ir[:boundary] {
		early += v * v
	}

	for _, v := range ir[boundary:] {
		late += v * v
	}

	total := early + late
	if total <= 0 {
		return 0, math.Inf(1)
	}

	definition = early / total

	switch {
	case late <= 0:
		clarity = math.Inf(1)
	case early <= 0:
		clarity = math.Inf(-1)
	default:
		clarity = 10 * math.Log10(early/late)
	}

	return definition, clarity
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var weighted, total float64

	for i, v := range ir {
		e := v * v
		weighted += float64(i) * e
		total += e
	}

	if total <= 0 {
		return 0
	}

	return weighted / total / a.SampleRate
}

// decayTime fits a line to the decay curve between startDB and endDB and
// extrapolates it to -60 dB. It returns 0 when the curve never reaches
// endDB or does not fall.
func (a *Analyzer) decayTime(curve []float64, startDB, endDB float64) float64 {
	first, last := -1, -1

	for i, v := range curve {
		if first < 0 && v <= startDB {
			first = i
		}

		if first >= 0 && v <= endDB {
			last = i
			break
		}
	}

	if first < 0 || last <= first {
		return 0
	}

	slope := regressionSlope(curve[first : last+1])
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}

// regressionSlope returns the least-squares slope of y over its index.
func regressionSlope(y []float64) float64 {
	n := float64(len(y))

	var sx, sy, sxx, sxy float64

	for i, v := range y {
		x := float64(i)
		sx += x
		sy += v
		sxx += x * x
		sxy += x * v
	}

	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}

	return (n*sxy - sx*sy) / den
}

func schroeder(ir []float64) []float64 {
	out := make([]float64, len(ir))

	var acc float64
	for i := len(ir) - 1; i >= 0; i-- {
		acc += ir[i] * ir[i]
		out[i] = acc
	}

	total := out[0]
	if total <= 0 {
		return out
	}

	for i, e := range out {
		if e <= 0 {
			out[i] = schroederFloorDB
			continue
		}

		out[i] = 10 * math.Log10(e/total)
	}

	return out
}

func peakIndex(ir []float64) int {
	idx := 0
	best := 0.0

	for i, v := range ir {
		if av := math.Abs(v); av > best {
			best = av
			idx = i
		}
	}

	return idx
}
