package sequencer

import (
	"math"

	"github.com/gordonklaus/polyshape/audio"
	"golang.org/x/image/math/f64"
)

const (
	DefaultNote = 69
	flashTime   = .4 // seconds
)

// A Node is one vertex of a Sequence.
type Node struct {
	Pos  f64.Vec2
	Note audio.NoteEventData

	flash float64
}

func newNode() Node {
	return Node{Note: audio.NoteEventData{Note: DefaultNote}}
}

// Flash returns how brightly the node is lit: 1 when it has just been
// tapped, fading to 0 over 0.4 seconds.
func (n *Node) Flash() float64 { return n.flash }

func (n *Node) tap() { n.flash = 1 }

func (n *Node) updateFlash(dt float64) {
	n.flash = math.Max(n.flash-dt/flashTime, 0)
}

func dist(a, b f64.Vec2) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}

func lerp(a, b f64.Vec2, t float64) f64.Vec2 {
	return f64.Vec2{audio.Lerp(a[0], b[0], t), audio.Lerp(a[1], b[1], t)}
}
