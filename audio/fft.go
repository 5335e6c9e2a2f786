package audio

import (
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
	"gopkg.in/errgo.v1"
)

// A Spectrum computes Hann-windowed magnitude spectra of a fixed size.
type Spectrum struct {
	fft fft.FFT
	env []float64
	buf []complex128
}

// NewSpectrum returns a Spectrum of the given size, which must be a power
// of two.
func NewSpectrum(size int) (*Spectrum, error) {
	f, err := fft.New(size)
	if err != nil {
		return nil, errgo.Notef(err, "cannot make spectrum of size %d", size)
	}
	env := make([]float64, size)
	for i := range env {
		env[i] = (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
	}
	return &Spectrum{fft: f, env: env, buf: make([]complex128, size)}, nil
}

func (s *Spectrum) Size() int { return len(s.env) }

// PeakFrequency returns the centre frequency of the strongest bin, excluding
// DC, in the spectrum of the first Size() samples of x.
func (s *Spectrum) PeakFrequency(x []float64, sampleRate float64) (float64, error) {
	n := len(s.env)
	if len(x) < n {
		return 0, errgo.Newf("need %d samples, have %d", n, len(x))
	}
	for i := range s.buf {
		s.buf[i] = complex(x[i]*s.env[i], 0)
	}
	s.buf = s.fft.Transform(s.buf)
	peak, best := 0, 0.0
	for i := 1; i <= n/2; i++ {
		if a := cmplx.Abs(s.buf[i]); a > best {
			peak, best = i, a
		}
	}
	return float64(peak) * sampleRate / float64(n), nil
}

// PeakFrequency analyses the largest power-of-two prefix of x.
func PeakFrequency(x []float64, sampleRate float64) (float64, error) {
	n := 1
	for 2*n <= len(x) {
		n *= 2
	}
	if n < 2 {
		return 0, errgo.Newf("need at least 2 samples, have %d", len(x))
	}
	s, err := NewSpectrum(n)
	if err != nil {
		return 0, errgo.Mask(err)
	}
	return s.PeakFrequency(x, sampleRate)
}
