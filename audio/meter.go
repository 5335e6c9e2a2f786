package audio

import "math"

// An AmpMeter reports the RMS level of the left channel over a sliding
// window.
type AmpMeter struct {
	windowSize float64
	buf        []float64
	i          int
	sum        float64
}

func NewAmpMeter(windowSize float64) *AmpMeter {
	return &AmpMeter{windowSize: windowSize}
}

func (a *AmpMeter) InitAudio(p *Params) {
	a.buf = make([]float64, max(1, int(p.SampleRate()*a.windowSize)))
	a.i, a.sum = 0, 0
}

func (a *AmpMeter) Amplitude(b Buffer) float64 {
	for f := range b.Frames() {
		x := float64(b[2*f])
		a.sum -= a.buf[a.i]
		a.buf[a.i] = x * x
		a.sum += a.buf[a.i]
		a.i = (a.i + 1) % len(a.buf)
	}
	return math.Sqrt(max(a.sum, 0) / float64(len(a.buf)))
}
