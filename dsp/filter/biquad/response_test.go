package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestResponseAtDCAndNyquist(t *testing.T) {
	c := testCoefficients

	dc := (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
	if got := c.Response(0, 48000); cmplx.Abs(got-complex(dc, 0)) > 1e-12 {
		t.Fatalf("H(0)=%v want=%g", got, dc)
	}

	// Both zeros sit at z=-1.
	if got := c.Response(24000, 48000); cmplx.Abs(got) > 1e-12 {
		t.Fatalf("H(nyquist)=%v want=0", got)
	}
}

func TestResponseMatchesImpulseDFT(t *testing.T) {
	s := NewSection(testCoefficients)

	const sr, freq = 48000.0, 3000.0

	var dft complex128
	for n := range 256 {
		x := 0.0
		if n == 0 {
			x = 1
		}

		y := s.ProcessSample(x)
		dft += complex(y, 0) * cmplx.Rect(1, -2*math.Pi*freq*float64(n)/sr)
	}

	if got := testCoefficients.Response(freq, sr); cmplx.Abs(got-dft) > 1e-9 {
		t.Fatalf("response=%v dft=%v", got, dft)
	}
}

func TestMagnitudeDBOfAllpass(t *testing.T) {
	ap := Coefficients{B0: 0.3, B1: -0.5, B2: 1, A1: -0.5, A2: 0.3}

	for _, f := range []float64{50, 1000, 9000, 20000} {
		if db := ap.MagnitudeDB(f, 48000); math.Abs(db) > 1e-9 {
			t.Fatalf("%g Hz: %g dB, want 0", f, db)
		}
	}
}
