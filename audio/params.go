package audio

import (
	"math"
	"sync/atomic"
	"time"
)

// Config is the startup configuration of an Engine.
type Config struct {
	SampleRate      float64
	FramesPerBuffer int
	// ChannelSize is the capacity of the note channel, rounded up to a power
	// of two.
	ChannelSize int
}

func DefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		FramesPerBuffer: 512,
		ChannelSize:     256,
	}
}

// Params is the context shared by the audio callback and the control
// goroutines.  The fields behind methods are atomics: the control side
// writes the sample rate, the audio side writes the callback timing, and
// either side may read both at any time.
type Params struct {
	// FramesPerBuffer is the requested hardware period.  It stands in for the
	// measured period until the first callback interval is known.
	FramesPerBuffer int

	// Clock reads the current time.  Offline renders replace it with a
	// ManualClock.
	Clock func() time.Time

	sampleRate       atomic.Uint64
	callbackInterval atomic.Uint64
	lastCallback     atomic.Int64
}

func NewParams(sampleRate float64, framesPerBuffer int) *Params {
	p := &Params{FramesPerBuffer: framesPerBuffer, Clock: time.Now}
	p.setSampleRate(sampleRate)
	return p
}

func (p *Params) SampleRate() float64 {
	return math.Float64frombits(p.sampleRate.Load())
}

func (p *Params) setSampleRate(sr float64) {
	p.sampleRate.Store(math.Float64bits(sr))
}

// CallbackInterval returns the measured time in seconds between the two most
// recent audio callbacks, or 0 before two callbacks have run.
func (p *Params) CallbackInterval() float64 {
	return math.Float64frombits(p.callbackInterval.Load())
}

// LastCallback returns the time at which the most recent audio callback
// finished rendering, or the zero Time if none has.
func (p *Params) LastCallback() time.Time {
	ns := p.lastCallback.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func (p *Params) setCallbackInterval(secs float64) {
	p.callbackInterval.Store(math.Float64bits(secs))
}

func (p *Params) setLastCallback(t time.Time) {
	p.lastCallback.Store(t.UnixNano())
}

// A ManualClock is a clock that only moves when told to.
type ManualClock struct {
	ns atomic.Int64
}

func NewManualClock(start time.Time) *ManualClock {
	c := &ManualClock{}
	c.ns.Store(start.UnixNano())
	return c
}

func (c *ManualClock) Now() time.Time { return time.Unix(0, c.ns.Load()) }

func (c *ManualClock) Advance(d time.Duration) { c.ns.Add(int64(d)) }
