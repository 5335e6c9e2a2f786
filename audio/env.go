package audio

import "math"

const (
	EnvelopeTime = .3   // seconds
	EnvelopePeak = .125 // gain at the first sample
)

// An Envelope is a precomputed gain curve, one value per sample.  It is
// immutable once built and is shared by every voice started while it is
// current.
type Envelope []float64

// NewEnvelope returns a linear decay from peak towards zero lasting
// round(sampleRate*seconds) samples.
func NewEnvelope(sampleRate, seconds, peak float64) Envelope {
	n := int(math.Round(sampleRate * seconds))
	if n < 0 {
		n = 0
	}
	e := make(Envelope, n)
	for k := range e {
		e[k] = float64(n-1-k) / float64(n) * peak
	}
	return e
}
