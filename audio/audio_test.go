package audio

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func approxEquals(margin float64) qt.Checker {
	return qt.CmpEquals(cmpopts.EquateApprox(0, margin))
}

func TestBuffer(t *testing.T) {
	c := qt.New(t)
	b := Buffer{1, -2, 3, -4, .5}
	c.Assert(b.Frames(), qt.Equals, 2)
	c.Assert(b.Peak(), qt.Equals, float32(4))
	c.Assert(b.Left(nil), qt.DeepEquals, []float64{1, 3})

	x := make([]float64, 0, 8)
	c.Assert(b.Left(x), qt.HasLen, 2)

	b.Zero()
	c.Assert(b, qt.DeepEquals, Buffer{0, 0, 0, 0, 0})
}

func TestParams(t *testing.T) {
	c := qt.New(t)
	p := NewParams(48000, 256)
	c.Assert(p.SampleRate(), qt.Equals, 48000.0)
	c.Assert(p.FramesPerBuffer, qt.Equals, 256)
	c.Assert(p.CallbackInterval(), qt.Equals, 0.0)
	c.Assert(p.LastCallback().IsZero(), qt.IsTrue)

	p.setSampleRate(44100)
	c.Assert(p.SampleRate(), qt.Equals, 44100.0)
}

func TestDefaultConfig(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	c.Assert(cfg.SampleRate, qt.Equals, 44100.0)
	c.Assert(cfg.FramesPerBuffer, qt.Equals, 512)
	c.Assert(cfg.ChannelSize, qt.Equals, 256)
}
