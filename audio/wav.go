package audio

import (
	"io"

	"github.com/youpy/go-wav"
	"gopkg.in/errgo.v1"
)

// WriteWAV writes interleaved stereo samples to w as a 16-bit PCM WAV file.
// Samples outside [-1, 1] are clipped.
func WriteWAV(w io.Writer, b Buffer, sampleRate int) error {
	n := b.Frames()
	ww := wav.NewWriter(w, uint32(n), 2, uint32(sampleRate), 16)
	samples := make([]wav.Sample, n)
	for i := range samples {
		samples[i].Values[0] = pcm16(b[2*i])
		samples[i].Values[1] = pcm16(b[2*i+1])
	}
	if err := ww.WriteSamples(samples); err != nil {
		return errgo.Notef(err, "cannot write samples")
	}
	return nil
}

func pcm16(x float32) int {
	x = max(-1, min(1, x))
	return int(x * 32767)
}
