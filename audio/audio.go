// Package audio is a small realtime polyphonic synthesizer.
//
// An Engine renders interleaved stereo float32 buffers from a pool of sine
// voices.  Note events reach it through a lock-free NoteChannel; everything
// that runs inside Engine.Process is free of locks, allocation and blocking.
package audio

import "github.com/juju/loggo"

var logger = loggo.GetLogger("polyshape.audio")

// A Buffer holds interleaved stereo samples; frame i is (b[2*i], b[2*i+1]).
type Buffer []float32

func (b Buffer) Frames() int { return len(b) / 2 }

func (b Buffer) Zero() Buffer {
	for i := range b {
		b[i] = 0
	}
	return b
}

// Left copies the left channel of b into x and returns it.  x is grown if it
// is shorter than b.Frames().
func (b Buffer) Left(x []float64) []float64 {
	n := b.Frames()
	if cap(x) < n {
		x = make([]float64, n)
	}
	x = x[:n]
	for i := range x {
		x[i] = float64(b[2*i])
	}
	return x
}

// Peak returns the largest absolute sample value in b.
func (b Buffer) Peak() float32 {
	var p float32
	for _, x := range b {
		if x < 0 {
			x = -x
		}
		if x > p {
			p = x
		}
	}
	return p
}
