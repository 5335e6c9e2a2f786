package audio

import "fmt"

type NoteEventKind uint8

const (
	NoteOn NoteEventKind = iota
	NoteOff
)

func (k NoteEventKind) String() string {
	switch k {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	}
	return fmt.Sprintf("NoteEventKind(%d)", uint8(k))
}

// NoteEventData is the payload of a note event.  Note is a fractional MIDI
// note number.
type NoteEventData struct {
	Note float64
}

// A NoteEvent asks the engine to act at sample offset Timing within the
// next buffer it renders.
type NoteEvent struct {
	Kind   NoteEventKind
	Timing uint32
	Data   NoteEventData
}

func NewNoteOn(timing uint32, data NoteEventData) NoteEvent {
	return NoteEvent{Kind: NoteOn, Timing: timing, Data: data}
}

func NewNoteOff(timing uint32, data NoteEventData) NoteEvent {
	return NoteEvent{Kind: NoteOff, Timing: timing, Data: data}
}
