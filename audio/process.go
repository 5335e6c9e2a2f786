package audio

import (
	"sync/atomic"
	"time"
)

// Callback intervals this short come from re-entrant or back-to-back
// callbacks and are not a measure of the hardware period.
const minCallbackInterval = .0001

// An Engine renders the voices of a VoiceHandler in response to note events.
//
// Process runs on the audio thread.  SetSampleRate, KillAll and Close may be
// called from any goroutine; they hand their work to Process through atomics.
type Engine struct {
	params *Params
	notes  *NoteChannel
	voices *VoiceHandler

	next    NoteEvent
	pending bool
	last    time.Time

	envelope atomic.Pointer[Envelope]
	kill     atomic.Bool

	// onBlock, if set, observes every sub-block before it is rendered.
	onBlock func(start, end int)
}

func NewEngine(c Config) *Engine {
	p := NewParams(c.SampleRate, c.FramesPerBuffer)
	return &Engine{
		params: p,
		notes:  NewNoteChannel(c.ChannelSize),
		voices: NewVoiceHandler(p, NewEnvelope(c.SampleRate, EnvelopeTime, EnvelopePeak)),
	}
}

func (e *Engine) Params() *Params { return e.params }

// Notes returns the channel on which the engine receives note events.
func (e *Engine) Notes() *NoteChannel { return e.notes }

// Voices returns the voice pool.  It must not be used while Process may be
// running.
func (e *Engine) Voices() *VoiceHandler { return e.voices }

// SetSampleRate publishes a new sample rate.  The envelope table is rebuilt
// here; the audio thread picks it up at the start of its next callback.
func (e *Engine) SetSampleRate(sr float64) {
	env := NewEnvelope(sr, EnvelopeTime, EnvelopePeak)
	e.params.setSampleRate(sr)
	e.envelope.Store(&env)
	logger.Infof("sample rate %g Hz, envelope %d samples", sr, len(env))
}

// KillAll silences every voice at the start of the next callback.
func (e *Engine) KillAll() { e.kill.Store(true) }

// Close closes the note channel.  Later sends fail with ErrChannelClosed.
func (e *Engine) Close() { e.notes.Close() }

// Process renders the next buffer of interleaved stereo audio into out.
//
// The buffer is split into sub-blocks of at most MaxBlockSize frames, cut
// short wherever a pending event is due, so that every event takes effect
// at its exact sample offset.  An event not yet due by the end of the buffer
// is held for the next call with its timing moved back by the buffer length.
func (e *Engine) Process(out []float32) {
	buf := Buffer(out).Zero()
	frames := buf.Frames()

	if env := e.envelope.Swap(nil); env != nil {
		e.voices.setEnvelope(*env)
	}
	if e.kill.Swap(false) {
		e.voices.KillActiveVoices()
	}

	if !e.pending {
		e.next, e.pending = e.notes.TryRecv()
	}

	start, end := 0, min(MaxBlockSize, frames)
	for start < frames {
		for e.pending {
			t := int(e.next.Timing)
			if t > start {
				end = min(end, t)
				break
			}
			e.apply(e.next)
			e.next, e.pending = e.notes.TryRecv()
		}

		if e.onBlock != nil {
			e.onBlock(start, end)
		}
		e.voices.ProcessBlock(buf, start, end)
		e.voices.TerminateFinishedVoices()

		start, end = end, min(end+MaxBlockSize, frames)
	}

	if e.pending {
		e.next.Timing = uint32(max(int(e.next.Timing)-frames, 0))
	}

	e.recordCallback()
}

func (e *Engine) apply(ev NoteEvent) {
	switch ev.Kind {
	case NoteOn:
		e.voices.StartVoice(ev.Data.Note)
	case NoteOff:
		panic("audio: note off events are not implemented")
	default:
		panic("audio: unknown note event kind " + ev.Kind.String())
	}
}

func (e *Engine) recordCallback() {
	now := e.params.Clock()
	if !e.last.IsZero() {
		dt := now.Sub(e.last).Seconds()
		if dt <= minCallbackInterval {
			return
		}
		e.params.setCallbackInterval(dt)
	}
	e.last = now
	e.params.setLastCallback(now)
}
