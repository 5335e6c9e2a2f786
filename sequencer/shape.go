package sequencer

import (
	"math"

	"github.com/gordonklaus/polyshape/audio"
	"golang.org/x/image/math/f64"
)

const (
	MinVertices = 3
	MaxVertices = 8

	// Radius is the distance of freshly placed vertices from the centre.
	Radius = 250.0
	// Extent bounds vertex coordinates to [-Extent, Extent].
	Extent = 400.0
)

// A Tapper receives the note of every vertex the playhead reaches.
type Tapper interface {
	Tap(audio.NoteEventData)
}

type TapperFunc func(audio.NoteEventData)

func (f TapperFunc) Tap(data audio.NoteEventData) { f(data) }

// A Sequence moves a playhead around a closed polygon, once per bar of four
// beats, and taps each vertex as the playhead reaches it.  The time spent
// between two vertices is proportional to the length of the edge joining
// them.
type Sequence struct {
	nodes  [MaxVertices]Node
	edges  [MaxVertices]float64 // edges[i] joins vertex i to i+1
	n      int
	length float64

	tempo    float64
	progress float64
	playhead f64.Vec2
	lastIdx  int

	tapper Tapper
}

// New returns a regular polygon of numVertices vertices, clamped to
// [MinVertices, MaxVertices], played at tempo beats per minute.  The first
// vertex sounds an octave above the others.
func New(numVertices int, tempo float64, t Tapper) *Sequence {
	s := &Sequence{n: clampVertices(numVertices), tempo: tempo, tapper: t}
	for i := range s.nodes {
		s.nodes[i] = newNode()
	}
	s.place()
	s.playhead = s.nodes[0].Pos
	s.nodes[0].Note.Note += 12
	return s
}

func clampVertices(n int) int {
	return max(MinVertices, min(MaxVertices, n))
}

// place arranges the vertices evenly on a circle, the first at the top and
// the rest following clockwise.
func (s *Sequence) place() {
	delta := 2 * math.Pi / float64(s.n)
	for i := range s.n {
		angle := float64(s.n-i)*delta + math.Pi/2
		s.nodes[i].Pos = f64.Vec2{Radius * math.Cos(angle), Radius * math.Sin(angle)}
	}
	s.measure()
}

func (s *Sequence) measure() {
	s.length = 0
	for i := range s.n {
		l := dist(s.nodes[i].Pos, s.nodes[(i+1)%s.n].Pos)
		s.edges[i] = l
		s.length += l
	}
}

func (s *Sequence) NumVertices() int { return s.n }

// SetNumVertices changes the number of vertices and places them afresh.
// Notes of the vertices are kept.
func (s *Sequence) SetNumVertices(n int) {
	s.n = clampVertices(n)
	s.place()
}

func (s *Sequence) Tempo() float64 { return s.tempo }

func (s *Sequence) SetTempo(bpm float64) { s.tempo = bpm }

// Reset rewinds the playhead to the first vertex and restores the regular
// polygon.  The first vertex is tapped again on the next Update.
func (s *Sequence) Reset() {
	s.progress = 0
	s.place()
}

// Progress returns the position of the playhead in the current bar, in
// [0, 1].
func (s *Sequence) Progress() float64 { return s.progress }

func (s *Sequence) Playhead() f64.Vec2 { return s.playhead }

// Length returns the perimeter of the polygon.
func (s *Sequence) Length() float64 { return s.length }

func (s *Sequence) Node(i int) Node { return s.nodes[i] }

// SetNodePosition moves vertex i, clamped to the square of half-width
// Extent.
func (s *Sequence) SetNodePosition(i int, p f64.Vec2) {
	for k := range p {
		p[k] = max(-Extent, min(Extent, p[k]))
	}
	s.nodes[i].Pos = p
	s.measure()
}

func (s *Sequence) SetNote(i int, note float64) {
	s.nodes[i].Note.Note = note
}

// Update advances the sequence by dt seconds.
func (s *Sequence) Update(dt float64) {
	for i := range s.n {
		s.nodes[i].updateFlash(dt)
	}
	s.advance(dt)
	s.movePlayhead()
}

func (s *Sequence) advance(dt float64) {
	bar := 60 / s.tempo * 4
	s.progress += dt / bar
	if s.progress > 1 {
		s.progress -= math.Floor(s.progress)
	}
}

func (s *Sequence) movePlayhead() {
	pos := s.length * s.progress
	idx := 0
	lower, upper := 0.0, 0.0
	for i := range s.n {
		lower = upper
		upper += s.edges[i]
		if lower <= pos && pos <= upper {
			idx = i
			break
		}
	}
	t := audio.ILerp(lower, upper, pos)
	s.playhead = lerp(s.nodes[idx].Pos, s.nodes[(idx+1)%s.n].Pos, t)

	if idx != s.lastIdx {
		s.lastIdx = idx
		s.tap()
	}
}

func (s *Sequence) tap() {
	n := &s.nodes[s.lastIdx]
	n.tap()
	if s.tapper != nil {
		s.tapper.Tap(n.Note)
	}
}
