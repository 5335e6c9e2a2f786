package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"gopkg.in/errgo.v1"
)

// OtoStream plays an Engine through oto.  oto pulls audio by reading from
// the stream, and each read is rendered as one or more calls to Process.
type OtoStream struct {
	ctx    *oto.Context
	player *oto.Player
	engine *Engine
	buf    Buffer // one period, allocated up front

	mu      sync.Mutex // Start and Close only
	started bool
}

func OpenOto(e *Engine) (*OtoStream, error) {
	p := e.Params()
	period := time.Duration(float64(p.FramesPerBuffer) / p.SampleRate() * float64(time.Second))
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(p.SampleRate()),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   period,
	})
	if err != nil {
		return nil, errgo.Notef(err, "cannot create oto context")
	}
	<-ready
	s := &OtoStream{
		ctx:    ctx,
		engine: e,
		buf:    make(Buffer, 2*max(1, p.FramesPerBuffer)),
	}
	s.player = ctx.NewPlayer(s)
	logger.Infof("oto: %g Hz, %v buffer", p.SampleRate(), period)
	return s, nil
}

// Read renders audio into p as little-endian float32 stereo frames.
func (s *OtoStream) Read(p []byte) (int, error) {
	const frameSize = 8
	n := 0
	for len(p)-n >= frameSize {
		frames := min((len(p)-n)/frameSize, s.buf.Frames())
		out := s.buf[:2*frames]
		s.engine.Process(out)
		for _, x := range out {
			binary.LittleEndian.PutUint32(p[n:], math.Float32bits(x))
			n += 4
		}
	}
	if n == 0 {
		clear(p)
		n = len(p)
	}
	return n, nil
}

func (s *OtoStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		s.player.Play()
		s.started = true
	}
	return nil
}

func (s *OtoStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return errgo.Mask(s.player.Close())
}
