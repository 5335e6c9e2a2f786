package audio

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

type fakeStream struct {
	startErr        error
	started, closed bool
}

func (s *fakeStream) Start() error {
	s.started = true
	return s.startErr
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

func TestPlay(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &fakeStream{}
	c.Assert(Play(ctx, s), qt.IsNil)
	c.Assert(s.started, qt.IsTrue)
	c.Assert(s.closed, qt.IsTrue)
}

func TestPlayStartError(t *testing.T) {
	c := qt.New(t)
	s := &fakeStream{startErr: errors.New("no device")}
	err := Play(context.Background(), s)
	c.Assert(err, qt.ErrorMatches, "cannot start stream: no device")
	c.Assert(s.closed, qt.IsTrue)
}

func TestOpenStreamUnknownBackend(t *testing.T) {
	c := qt.New(t)
	_, err := OpenStream("jack", NewEngine(DefaultConfig()))
	c.Assert(err, qt.ErrorMatches, `unknown audio backend "jack"`)
}

func TestOtoStreamRead(t *testing.T) {
	c := qt.New(t)
	e := NewEngine(Config{SampleRate: 44100, FramesPerBuffer: 64, ChannelSize: 16})
	c.Assert(e.Notes().Send(NewNoteOn(0, NoteEventData{Note: 69})), qt.IsNil)
	s := &OtoStream{engine: e, buf: make(Buffer, 2*64)}

	p := make([]byte, 8*200+3)
	n, err := s.Read(p)
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 8*200)
	c.Assert(e.Voices().NumActive(), qt.Equals, 1)
	c.Assert(e.Voices().Voice(0).EnvelopePosition(), qt.Equals, 200)

	n, err = s.Read(p[:5])
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 5)
}
