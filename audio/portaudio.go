package audio

import (
	"github.com/gordonklaus/portaudio"
	"gopkg.in/errgo.v1"
)

// PortAudioStream plays an Engine through the default PortAudio output
// device.
type PortAudioStream struct {
	stream *portaudio.Stream
}

// OpenPortAudio opens a stereo output stream at the engine's sample rate
// and period.  Process is installed as the stream callback.
func OpenPortAudio(e *Engine) (*PortAudioStream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, errgo.Notef(err, "cannot initialize portaudio")
	}
	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		portaudio.Terminate()
		return nil, errgo.Notef(err, "no default output device")
	}
	p := e.Params()
	stream, err := portaudio.OpenDefaultStream(0, 2, p.SampleRate(), p.FramesPerBuffer, e.Process)
	if err != nil {
		portaudio.Terminate()
		return nil, errgo.Notef(err, "cannot open stream on %q", dev.Name)
	}
	logger.Infof("portaudio: %q at %g Hz, %d frames per buffer", dev.Name, p.SampleRate(), p.FramesPerBuffer)
	return &PortAudioStream{stream}, nil
}

func (s *PortAudioStream) Start() error {
	return errgo.Mask(s.stream.Start())
}

func (s *PortAudioStream) Close() error {
	defer portaudio.Terminate()
	s.stream.Stop()
	return errgo.Mask(s.stream.Close())
}
