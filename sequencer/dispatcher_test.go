package sequencer

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gordonklaus/polyshape/audio"
	"gopkg.in/errgo.v1"
)

const sampleRate = 44100

func frames(n int) time.Duration {
	return time.Duration(float64(n) / sampleRate * float64(time.Second))
}

func newTestEngine() (*audio.Engine, *audio.ManualClock) {
	e := audio.NewEngine(audio.Config{SampleRate: sampleRate, FramesPerBuffer: 512, ChannelSize: 4})
	clock := audio.NewManualClock(time.Unix(1000, 0))
	e.Params().Clock = clock.Now
	return e, clock
}

func TestOffset(t *testing.T) {
	c := qt.New(t)
	e, clock := newTestEngine()
	d := NewDispatcher(e.Params(), e.Notes(), 8)
	buf := make([]float32, 2*512)

	// Nothing is known before the first callback.
	c.Assert(d.Offset(clock.Now()), qt.Equals, uint32(0))

	e.Process(buf)
	t0 := clock.Now()
	c.Assert(d.Offset(t0.Add(frames(100))), qt.Equals, uint32(100))
	c.Assert(d.Offset(t0.Add(frames(600))), qt.Equals, uint32(88))
	c.Assert(d.Offset(t0.Add(-time.Millisecond)), qt.Equals, uint32(0))

	// Once the callback period has been measured it takes the place of
	// the requested one.
	clock.Advance(frames(400))
	e.Process(buf)
	t1 := clock.Now()
	c.Assert(e.Params().CallbackInterval() > 0, qt.IsTrue)
	c.Assert(d.Offset(t1.Add(frames(100))), qt.Equals, uint32(100))
	c.Assert(d.Offset(t1.Add(frames(450))), qt.Equals, uint32(50))
}

func TestDispatch(t *testing.T) {
	c := qt.New(t)
	e, clock := newTestEngine()
	d := NewDispatcher(e.Params(), e.Notes(), 8)
	e.Process(make([]float32, 2*512))

	err := d.Dispatch(Tap{Data: audio.NoteEventData{Note: 72}, At: clock.Now().Add(frames(30))})
	c.Assert(err, qt.IsNil)
	ev, ok := e.Notes().TryRecv()
	c.Assert(ok, qt.IsTrue)
	c.Assert(ev, qt.Equals, audio.NewNoteOn(30, audio.NoteEventData{Note: 72}))
}

func TestDispatchFull(t *testing.T) {
	c := qt.New(t)
	e, clock := newTestEngine()
	d := NewDispatcher(e.Params(), e.Notes(), 8)
	for i := range 6 {
		err := d.Dispatch(Tap{Data: audio.NoteEventData{Note: float64(60 + i)}, At: clock.Now()})
		c.Assert(err, qt.IsNil)
	}
	c.Assert(e.Notes().Len(), qt.Equals, 4)
	ev, _ := e.Notes().TryRecv()
	c.Assert(ev.Data.Note, qt.Equals, 60.0)
}

func TestDispatchClosed(t *testing.T) {
	c := qt.New(t)
	e, clock := newTestEngine()
	d := NewDispatcher(e.Params(), e.Notes(), 8)
	e.Close()
	err := d.Dispatch(Tap{Data: audio.NoteEventData{Note: 60}, At: clock.Now()})
	c.Assert(err, qt.ErrorMatches, "cannot dispatch note: note channel closed")
	c.Assert(errgo.Cause(err), qt.Equals, audio.ErrChannelClosed)
}

func TestTapNeverBlocks(t *testing.T) {
	c := qt.New(t)
	e, _ := newTestEngine()
	d := NewDispatcher(e.Params(), e.Notes(), 1)
	d.Tap(audio.NoteEventData{Note: 60})
	d.Tap(audio.NoteEventData{Note: 61})
	c.Assert(d.taps, qt.HasLen, 1)
	tap := <-d.taps
	c.Assert(tap.Data.Note, qt.Equals, 60.0)
}

func TestRun(t *testing.T) {
	c := qt.New(t)
	e, _ := newTestEngine()
	d := NewDispatcher(e.Params(), e.Notes(), 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- d.Run(ctx) }()

	s := New(3, 240, d)
	s.Update(.4)
	s.Update(.3)

	deadline := time.After(5 * time.Second)
	for e.Notes().Len() < 2 {
		select {
		case <-deadline:
			c.Fatal("notes never dispatched")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	c.Assert(<-done, qt.IsNil)

	ev, _ := e.Notes().TryRecv()
	c.Assert(ev.Data.Note, qt.Equals, 69.0)
}

func TestRunClosed(t *testing.T) {
	c := qt.New(t)
	e, _ := newTestEngine()
	d := NewDispatcher(e.Params(), e.Notes(), 8)
	e.Close()
	d.Tap(audio.NoteEventData{Note: 60})
	err := d.Run(context.Background())
	c.Assert(errgo.Cause(err), qt.Equals, audio.ErrChannelClosed)
}

func TestOfflineSequence(t *testing.T) {
	c := qt.New(t)
	e, clock := newTestEngine()
	d := NewDispatcher(e.Params(), e.Notes(), 0)
	s := New(4, 120, TapperFunc(func(data audio.NoteEventData) {
		c.Check(d.Dispatch(Tap{Data: data, At: clock.Now()}), qt.IsNil)
	}))

	// Half a second per edge is 22050 frames.  The sequencer is stepped 64
	// frames at a time, so it reaches the second vertex at frame 22080, 64
	// frames after the 44th callback, and the note sounds 64 frames into
	// the buffer that follows.
	buf := make([]float32, 2*512)
	onset := -1
	for n := 0; onset < 0 && n < 100; n++ {
		e.Process(buf)
		for f := range 512 {
			if buf[2*f] != 0 {
				onset = n*512 + f
				break
			}
		}
		for range 512 / audio.MaxBlockSize {
			clock.Advance(frames(audio.MaxBlockSize))
			s.Update(float64(audio.MaxBlockSize) / sampleRate)
		}
	}
	c.Assert(onset, qt.Equals, 44*512+64+1)
}
