package sequencer

import (
	"context"
	"math"
	"time"

	"github.com/gordonklaus/polyshape/audio"
	"github.com/juju/loggo"
	"gopkg.in/errgo.v1"
)

var logger = loggo.GetLogger("polyshape.sequencer")

// A Tap is a note triggered by the sequencer at a moment in time.
type Tap struct {
	Data audio.NoteEventData
	At   time.Time
}

// A Dispatcher turns taps into note events for the audio engine.  Each tap
// is stamped with the time it happened and placed at the matching sample
// offset within the engine's next buffer, so that the spacing between notes
// survives the jitter of the control loop.
type Dispatcher struct {
	params *audio.Params
	notes  *audio.NoteChannel
	taps   chan Tap
}

// NewDispatcher returns a Dispatcher sending to notes.  queue is the number
// of taps that may wait for Run before further taps are dropped.
func NewDispatcher(p *audio.Params, notes *audio.NoteChannel, queue int) *Dispatcher {
	return &Dispatcher{params: p, notes: notes, taps: make(chan Tap, queue)}
}

// Tap implements Tapper.  It never blocks.
func (d *Dispatcher) Tap(data audio.NoteEventData) {
	select {
	case d.taps <- Tap{Data: data, At: d.params.Clock()}:
	default:
		logger.Warningf("tap queue full, dropping note %g", data.Note)
	}
}

// Run dispatches queued taps until ctx is done.  It fails only when the
// engine has closed its note channel.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-d.taps:
			if err := d.Dispatch(t); err != nil {
				return errgo.Mask(err, errgo.Is(audio.ErrChannelClosed))
			}
		}
	}
}

// Dispatch sends t to the engine.  A full note channel drops the note with
// a warning.
func (d *Dispatcher) Dispatch(t Tap) error {
	ev := audio.NewNoteOn(d.Offset(t.At), t.Data)
	err := d.notes.Send(ev)
	switch errgo.Cause(err) {
	case nil:
		logger.Tracef("note %g at offset %d", t.Data.Note, ev.Timing)
		return nil
	case audio.ErrChannelFull:
		logger.Warningf("dropping note %g: %v", t.Data.Note, err)
		return nil
	}
	return errgo.NoteMask(err, "cannot dispatch note", errgo.Is(audio.ErrChannelClosed))
}

// Offset returns the sample offset within the engine's next buffer that
// corresponds to time t: the time since the last callback, in samples,
// modulo the length of a buffer.
func (d *Dispatcher) Offset(t time.Time) uint32 {
	last := d.params.LastCallback()
	if last.IsZero() {
		return 0
	}
	sr := d.params.SampleRate()
	frames := d.params.FramesPerBuffer
	if iv := d.params.CallbackInterval(); iv > 0 {
		frames = int(math.Round(iv * sr))
	}
	if frames <= 0 {
		return 0
	}
	delay := max(t.Sub(last).Seconds(), 0)
	return uint32(int(math.Round(delay*sr)) % frames)
}
