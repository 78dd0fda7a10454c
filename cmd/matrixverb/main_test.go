package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-matrixverb/dsp/effects/reverb"
)

func testSettings() settings {
	p := reverb.DefaultParams()
	p.Balance = 1

	return settings{
		sampleRate: 48000,
		seconds:    0.5,
		seed:       1,
		quality:    2,
		echoes:     4,
		order:      reverb.DefaultFilterOrder,
		echoMode:   "linmin",
		matrixMode: "linmin",
		echoMin:    0.03,
		echoMax:    0.08,
		matrixMin:  0.05,
		matrixMax:  0.15,
		params:     p,
		showDelays: true,
	}
}

func TestRunPrintsTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, testSettings()))

	out := buf.String()
	for _, want := range []string{"Echo", "Line", "RT60", "EDT", "C80", "Echo density", "High/low energy", "Lines"} {
		assert.Contains(t, out, want)
	}

	// Four echo stages and four network lines.
	assert.Contains(t, out, "\n3 ")
	assert.NotContains(t, out, "\n4 ")
}

func TestRunWithoutDelays(t *testing.T) {
	s := testSettings()
	s.showDelays = false

	var buf bytes.Buffer
	require.NoError(t, run(&buf, s))
	assert.True(t, strings.HasPrefix(buf.String(), "Metric"))
}

func TestRunRejectsBadSettings(t *testing.T) {
	short := testSettings()
	short.seconds = 0.01
	require.Error(t, run(&bytes.Buffer{}, short))

	rng := testSettings()
	rng.echoMin, rng.echoMax = 0.1, 0.01
	require.Error(t, run(&bytes.Buffer{}, rng))

	rate := testSettings()
	rate.sampleRate = 0
	require.Error(t, run(&bytes.Buffer{}, rate))
}

func TestPrintModes(t *testing.T) {
	var buf bytes.Buffer
	printModes(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "linmin (default)", lines[0])
	assert.Equal(t, "rand", lines[8])
}
