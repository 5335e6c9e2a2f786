package audio

import (
	"context"

	"gopkg.in/errgo.v1"
)

// A Stream carries an Engine's output to an audio device.
type Stream interface {
	Start() error
	Close() error
}

// Play starts s and keeps it running until ctx is done, then closes it.
func Play(ctx context.Context, s Stream) error {
	if err := s.Start(); err != nil {
		s.Close()
		return errgo.Notef(err, "cannot start stream")
	}
	logger.Debugf("stream started")
	<-ctx.Done()
	if err := s.Close(); err != nil {
		return errgo.Notef(err, "cannot close stream")
	}
	logger.Debugf("stream closed")
	return nil
}

// OpenStream opens the named backend, "portaudio" or "oto", for e.
func OpenStream(backend string, e *Engine) (Stream, error) {
	switch backend {
	case "portaudio":
		return OpenPortAudio(e)
	case "oto":
		return OpenOto(e)
	}
	return nil, errgo.Newf("unknown audio backend %q", backend)
}
