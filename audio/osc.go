package audio

import (
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// A SineOsc is a phase-accumulating sine oscillator.
type SineOsc struct {
	phase, inc float64
}

// NewSineOsc returns an oscillator at phase 0.  freq must lie in
// (0, sampleRate/2]; this is only checked in audiodebug builds.
func NewSineOsc(freq, sampleRate float64) SineOsc {
	var o SineOsc
	o.SetFrequency(freq, sampleRate)
	return o
}

// SetFrequency changes the frequency without resetting the phase.
func (o *SineOsc) SetFrequency(freq, sampleRate float64) {
	if debugAssertions && !(0 < freq && freq <= sampleRate/2) {
		panic(fmt.Sprintf("audio: oscillator frequency %g Hz outside (0, %g]", freq, sampleRate/2))
	}
	o.inc = twoPi * freq / sampleRate
}

// Process returns the sine of the current phase and advances it.  The phase
// is wrapped by a single subtraction, which holds for any increment up to 2π.
func (o *SineOsc) Process() float64 {
	x := math.Sin(o.phase)
	o.phase += o.inc
	if o.phase >= twoPi {
		o.phase -= twoPi
	}
	return x
}

func (o *SineOsc) Phase() float64 { return o.phase }
