package main

import (
	"os"
	"time"

	"github.com/gordonklaus/polyshape/audio"
	"github.com/gordonklaus/polyshape/sequencer"
	"github.com/spf13/cobra"
	"gopkg.in/errgo.v1"
)

var renderFlags struct {
	out     string
	seconds float64
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the sequencer offline to a WAV file",
	Long: `Render the sequencer to a 16-bit stereo WAV file, faster than real time.

The engine is driven exactly as an audio device would drive it, one buffer
at a time, against a simulated clock.  Between buffers the sequencer is
stepped in 64-frame increments and its notes dispatched as they happen.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFlags.out, "out", "o", "shapeseq.wav", "output file")
	renderCmd.Flags().Float64VarP(&renderFlags.seconds, "seconds", "s", 8, "length of the rendering")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := opts.config()
	if err != nil {
		return errgo.Mask(err)
	}
	if renderFlags.seconds <= 0 {
		return errgo.Newf("seconds must be positive, got %g", renderFlags.seconds)
	}
	r, err := render(cfg, opts.vertices, opts.tempo, renderFlags.seconds)
	if err != nil {
		return errgo.Mask(err)
	}

	f, err := os.Create(renderFlags.out)
	if err != nil {
		return errgo.Mask(err)
	}
	if err := audio.WriteWAV(f, r.out, int(cfg.SampleRate)); err != nil {
		f.Close()
		return errgo.Notef(err, "cannot write %s", renderFlags.out)
	}
	if err := f.Close(); err != nil {
		return errgo.Mask(err)
	}
	logger.Infof("wrote %s: %.2fs, %d notes, peak %.3f, max RMS %.3f, dominant frequency %.1f Hz",
		renderFlags.out, renderFlags.seconds, r.notes, r.peak, r.maxRMS, r.freq)
	return nil
}

type rendering struct {
	out    audio.Buffer
	notes  int
	peak   float32
	maxRMS float64
	freq   float64
}

// render runs an engine and a sequencer against a simulated clock.
func render(cfg audio.Config, vertices int, tempo, seconds float64) (*rendering, error) {
	e := audio.NewEngine(cfg)
	defer e.Close()
	p := e.Params()
	clock := audio.NewManualClock(time.Now())
	p.Clock = clock.Now

	r := &rendering{out: make(audio.Buffer, 2*int(seconds*cfg.SampleRate))}
	d := sequencer.NewDispatcher(p, e.Notes(), 0)
	var dispatchErr error
	seq := sequencer.New(vertices, tempo, sequencer.TapperFunc(func(data audio.NoteEventData) {
		err := d.Dispatch(sequencer.Tap{Data: data, At: clock.Now()})
		if err != nil && dispatchErr == nil {
			dispatchErr = err
		}
		r.notes++
	}))

	meter := audio.NewAmpMeter(.1)
	meter.InitAudio(p)
	audio.Render(e, r.out, cfg.FramesPerBuffer, func(period audio.Buffer) {
		r.maxRMS = max(r.maxRMS, meter.Amplitude(period))
		for n := period.Frames(); n > 0; n -= audio.MaxBlockSize {
			dt := float64(min(n, audio.MaxBlockSize)) / cfg.SampleRate
			clock.Advance(time.Duration(dt * float64(time.Second)))
			seq.Update(dt)
		}
	})
	if dispatchErr != nil {
		return nil, errgo.Mask(dispatchErr)
	}

	r.peak = r.out.Peak()
	freq, err := audio.PeakFrequency(r.out.Left(nil), cfg.SampleRate)
	if err != nil {
		logger.Warningf("no spectrum: %v", err)
	}
	r.freq = freq
	return r, nil
}
