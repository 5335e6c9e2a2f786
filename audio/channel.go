package audio

import (
	"sync/atomic"

	"gopkg.in/errgo.v1"
)

var (
	ErrChannelFull   = errgo.New("note channel full")
	ErrChannelClosed = errgo.New("note channel closed")
)

// A NoteChannel is a bounded single-producer single-consumer queue of note
// events.  Send is called from one control goroutine and TryRecv from the
// audio callback; neither blocks nor allocates.
type NoteChannel struct {
	buf    []NoteEvent
	mask   uint64
	head   atomic.Uint64 // next slot to read
	tail   atomic.Uint64 // next slot to write
	closed atomic.Bool
}

// NewNoteChannel returns a channel holding at least size events.
func NewNoteChannel(size int) *NoteChannel {
	n := 1
	for n < size {
		n <<= 1
	}
	return &NoteChannel{buf: make([]NoteEvent, n), mask: uint64(n - 1)}
}

// Send enqueues e.  When the channel is full the event is dropped and
// ErrChannelFull returned; after Close it returns ErrChannelClosed.
func (c *NoteChannel) Send(e NoteEvent) error {
	if c.closed.Load() {
		return ErrChannelClosed
	}
	tail := c.tail.Load()
	if tail-c.head.Load() == uint64(len(c.buf)) {
		return ErrChannelFull
	}
	c.buf[tail&c.mask] = e
	c.tail.Store(tail + 1)
	return nil
}

// TryRecv dequeues the oldest event, if any.
func (c *NoteChannel) TryRecv() (NoteEvent, bool) {
	head := c.head.Load()
	if head == c.tail.Load() {
		return NoteEvent{}, false
	}
	e := c.buf[head&c.mask]
	c.head.Store(head + 1)
	return e, true
}

// Close marks the receiving side as gone.  Events already queued can still
// be received.
func (c *NoteChannel) Close() { c.closed.Store(true) }

func (c *NoteChannel) Len() int { return int(c.tail.Load() - c.head.Load()) }

func (c *NoteChannel) Cap() int { return len(c.buf) }
