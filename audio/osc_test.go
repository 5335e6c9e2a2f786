package audio

import (
	"math"
	"strconv"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestSineOscReturnsToStart(t *testing.T) {
	c := qt.New(t)
	const sampleRate = 48000
	for _, freq := range []float64{1, 100, 441, 480, 1000, 3000, 12000, 24000} {
		c.Run(fmtFreq(freq), func(c *qt.C) {
			o := NewSineOsc(freq, sampleRate)
			c.Assert(o.Process(), qt.Equals, 0.0)
			steps := int(math.Round(sampleRate / freq))
			for range steps - 1 {
				o.Process()
			}
			// The phase error after one nominal period is at most half a step.
			bound := math.Pi*freq/sampleRate + 1e-9
			x := o.Process()
			c.Assert(math.Abs(x) <= bound, qt.IsTrue, qt.Commentf("sample %g, bound %g", x, bound))
		})
	}
}

func TestSineOscPhaseRange(t *testing.T) {
	c := qt.New(t)
	const sampleRate = 44100
	for _, freq := range []float64{27.5, 440, 4186, 22050} {
		o := NewSineOsc(freq, sampleRate)
		for range 10000 {
			x := o.Process()
			c.Assert(x >= -1 && x <= 1, qt.IsTrue)
			c.Assert(o.Phase() >= 0 && o.Phase() < twoPi, qt.IsTrue, qt.Commentf("freq %g phase %g", freq, o.Phase()))
		}
	}
}

func TestSineOscSetFrequencyKeepsPhase(t *testing.T) {
	c := qt.New(t)
	o := NewSineOsc(1000, 44100)
	for range 10 {
		o.Process()
	}
	phase := o.Phase()
	o.SetFrequency(500, 44100)
	c.Assert(o.Phase(), qt.Equals, phase)
	c.Assert(o.inc, qt.Equals, twoPi*500/44100)
}

func fmtFreq(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) + "Hz" }

func BenchmarkSineOsc(b *testing.B) {
	o := NewSineOsc(1234, 96000)
	for i := 0; i < b.N; i++ {
		o.Process()
	}
}
