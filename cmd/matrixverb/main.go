// Command matrixverb renders the impulse response of a MatrixVerb and
// prints its delay structure and room acoustic metrics.
//
// Usage:
//
//	matrixverb [flags]
//
// Examples:
//
//	matrixverb
//	matrixverb -quality 2 -echoes 4
//	matrixverb -liveness 0.9 -highdamp 0.2 -seconds 6
//	matrixverb -echomode expmin -matrixmode rand -seed 7
//	matrixverb -list-modes
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-matrixverb/dsp/core"
	"github.com/cwbudde/algo-matrixverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-matrixverb/dsp/prime"
	"github.com/cwbudde/algo-matrixverb/dsp/signal"
	"github.com/cwbudde/algo-matrixverb/measure/ir"
)

const (
	densityWindow = 1024
	bandFrameSize = 2048
)

type settings struct {
	sampleRate float64
	seconds    float64
	blockSize  int
	seed       int64
	quality    int
	echoes     int
	order      int
	echoMode   string
	matrixMode string
	echoMin    float64
	echoMax    float64
	matrixMin  float64
	matrixMax  float64
	params     reverb.Params
	showDelays bool
}

func main() {
	s := settings{params: reverb.DefaultParams()}
	s.params.Balance = 1

	flag.Float64Var(&s.sampleRate, "samplerate", 48000, "sample rate in Hz")
	flag.Float64Var(&s.seconds, "seconds", 3, "impulse response length in seconds")
	flag.IntVar(&s.blockSize, "block", core.DefaultProcessorConfig().BlockSize, "render block size in frames")
	flag.Int64Var(&s.seed, "seed", 1, "random seed for modulation and the rand spacing policy")
	flag.IntVar(&s.quality, "quality", 4, "network size exponent, 2^quality lines (1-4)")
	flag.IntVar(&s.echoes, "echoes", 8, "number of early reflection stages")
	flag.IntVar(&s.order, "order", reverb.DefaultFilterOrder, "damping filter order (1, 2 or 4)")
	flag.StringVar(&s.echoMode, "echomode", prime.DefaultSpacing.String(), "early reflection spacing policy")
	flag.StringVar(&s.matrixMode, "matrixmode", prime.DefaultSpacing.String(), "network spacing policy")
	flag.Float64Var(&s.echoMin, "echomin", 0.03, "shortest early reflection delay in seconds")
	flag.Float64Var(&s.echoMax, "echomax", 0.08, "longest early reflection delay in seconds")
	flag.Float64Var(&s.matrixMin, "matrixmin", 0.05, "shortest network delay in seconds")
	flag.Float64Var(&s.matrixMax, "matrixmax", 0.15, "longest network delay in seconds")
	flag.Float64Var(&s.params.Liveness, "liveness", s.params.Liveness, "feedback amount (0-1)")
	flag.Float64Var(&s.params.Depth, "depth", s.params.Depth, "early (0) to late (1) balance")
	flag.Float64Var(&s.params.CrossoverHz, "crossover", s.params.CrossoverHz, "damping cutoff in Hz")
	flag.Float64Var(&s.params.HighDamp, "highdamp", s.params.HighDamp, "damping strength above the crossover (0-1)")
	flag.Float64Var(&s.params.Balance, "balance", s.params.Balance, "dry (0) to wet (1) mix")
	flag.Float64Var(&s.params.ModDepth, "moddepth", s.params.ModDepth, "relative delay modulation depth")
	flag.Float64Var(&s.params.ModSpeedHz, "modspeed", s.params.ModSpeedHz, "modulation rate in Hz")
	flag.BoolVar(&s.showDelays, "delays", true, "print the delay tables")
	listModes := flag.Bool("list-modes", false, "list spacing policies")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: matrixverb [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a MatrixVerb impulse response and prints its metrics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  matrixverb -quality 2 -echoes 4\n")
		fmt.Fprintf(os.Stderr, "  matrixverb -liveness 0.9 -highdamp 0.2 -seconds 6\n")
		fmt.Fprintf(os.Stderr, "  matrixverb -list-modes\n")
	}
	flag.Parse()

	if *listModes {
		printModes(os.Stdout)
		return
	}

	if err := run(os.Stdout, s); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printModes(w io.Writer) {
	for _, sp := range prime.Spacings() {
		marker := ""
		if sp == prime.DefaultSpacing {
			marker = " (default)"
		}

		fmt.Fprintf(w, "%s%s\n", sp, marker)
	}
}

func warnUnknownMode(name string) {
	if _, ok := prime.ParseSpacing(name); !ok {
		fmt.Fprintf(os.Stderr, "warning: unknown spacing %q, using %s\n", name, prime.DefaultSpacing)
	}
}

func run(w io.Writer, s settings) error {
	warnUnknownMode(s.echoMode)
	warnUnknownMode(s.matrixMode)

	v, err := reverb.New(s.sampleRate,
		reverb.WithQuality(s.quality),
		reverb.WithEchoCount(s.echoes),
		reverb.WithFilterOrder(s.order),
		reverb.WithEchoMode(s.echoMode),
		reverb.WithMatrixMode(s.matrixMode),
		reverb.WithEchoRange(s.echoMin, s.echoMax),
		reverb.WithMatrixRange(s.matrixMin, s.matrixMax),
		reverb.WithParams(s.params),
		reverb.WithSeed(s.seed),
	)
	if err != nil {
		return err
	}

	left, right, err := render(v, s.seconds, s.blockSize)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if s.showDelays {
		writeDelays(tw, "Echo", v.EchoDelays(), v.EchoSeconds())
		writeDelays(tw, "Line", v.MatrixDelays(), v.MatrixSeconds())
	}

	if err := writeMetrics(tw, v, left, right); err != nil {
		return err
	}

	return tw.Flush()
}

// render feeds a unit impulse through v in processor-sized blocks and
// returns seconds of output.
func render(v *reverb.MatrixVerb, seconds float64, blockSize int) (left, right []float64, err error) {
	gen := signal.NewGenerator(core.WithSampleRate(v.SampleRate()), core.WithBlockSize(blockSize))

	n := gen.Samples(seconds)
	if n < bandFrameSize {
		return nil, nil, fmt.Errorf("render length must be at least %d samples: %d", bandFrameSize, n)
	}

	impulse, err := gen.Impulse(1, n, 0)
	if err != nil {
		return nil, nil, err
	}

	left = make([]float64, n)
	right = make([]float64, n)

	err = gen.Blocks(n, func(start, end int) error {
		return v.ProcessBlock(left[start:end], right[start:end], impulse[start:end], 1)
	})
	if err != nil {
		return nil, nil, err
	}

	return left, right, nil
}

func writeDelays(w io.Writer, label string, samples []int, seconds []float64) {
	fmt.Fprintf(w, "%s\tSamples\tSeconds\n", label)
	fmt.Fprintf(w, "%s\t-------\t-------\n", strings.Repeat("-", len(label)))

	for i, n := range samples {
		fmt.Fprintf(w, "%d\t%d\t%.5f\n", i, n, seconds[i])
	}

	fmt.Fprintln(w, "\t\t")
}

type metricRow struct {
	name string
	unit string
	l, r float64
}

func writeMetrics(w io.Writer, v *reverb.MatrixVerb, left, right []float64) error {
	analyzer := ir.NewAnalyzer(v.SampleRate())
	early := int(0.1 * v.SampleRate())

	var rows []metricRow

	add := func(name, unit string, fn func([]float64) (float64, error)) error {
		l, err := fn(left)
		if err != nil {
			return fmt.Errorf("%s (left): %w", name, err)
		}

		r, err := fn(right)
		if err != nil {
			return fmt.Errorf("%s (right): %w", name, err)
		}

		rows = append(rows, metricRow{name, unit, l, r})

		return nil
	}

	metrics := func(pick func(ir.Metrics) float64) func([]float64) (float64, error) {
		return func(x []float64) (float64, error) {
			m, err := analyzer.Analyze(x)
			return pick(m), err
		}
	}

	steps := []struct {
		name, unit string
		fn         func([]float64) (float64, error)
	}{
		{"RT60", "s", metrics(func(m ir.Metrics) float64 { return m.RT60 })},
		{"EDT", "s", metrics(func(m ir.Metrics) float64 { return m.EDT })},
		{"C80", "dB", metrics(func(m ir.Metrics) float64 { return m.C80 })},
		{"Center time", "s", metrics(func(m ir.Metrics) float64 { return m.CenterTime })},
		{"Echo density 0-100 ms", "", func(x []float64) (float64, error) {
			return ir.MeanEchoDensity(x[:min(early, len(x))], densityWindow)
		}},
		{"Echo density tail", "", func(x []float64) (float64, error) {
			return ir.MeanEchoDensity(x[min(early, len(x)-densityWindow):], densityWindow)
		}},
		{"High/low energy", "dB", func(x []float64) (float64, error) {
			bands, err := ir.BandDecay(x, v.SampleRate(), bandFrameSize, v.Params().CrossoverHz)
			if err != nil {
				return 0, err
			}

			return 10 * math.Log10(bands.HighToLowRatio()), nil
		}},
	}

	for _, st := range steps {
		if err := add(st.name, st.unit, st.fn); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "Metric\tLeft\tRight\tUnit\n")
	fmt.Fprintf(w, "------\t----\t-----\t----\n")

	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%s\n", r.name, r.l, r.r, r.unit)
	}

	fmt.Fprintf(w, "Lines\t%d\t\t\n", v.NumDelays())
	fmt.Fprintf(w, "Tail latency\t%d\t\tsamples\n", v.TailLatency())

	return nil
}
