package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/gordonklaus/polyshape/audio"
	"github.com/gordonklaus/polyshape/sequencer"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/errgo.v1"
)

const (
	updateRate = 60 // sequencer updates per second
	tempoStep  = 5
	minTempo   = 5
)

var playFlags struct {
	backend string
	keys    bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the sequencer live until interrupted",
	Long: `Play the sequencer through the default audio output.

With --keys the terminal controls the sequencer:
  + -   tempo up or down
  ] [   one vertex more or less
  r     reset the playhead and the polygon
  k     silence every voice
  q     quit`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playFlags.backend, "backend", "portaudio", "audio backend, portaudio or oto")
	playCmd.Flags().BoolVar(&playFlags.keys, "keys", false, "read control keys from the terminal")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := opts.config()
	if err != nil {
		return errgo.Mask(err)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := audio.NewEngine(cfg)
	defer e.Close()
	stream, err := audio.OpenStream(playFlags.backend, e)
	if err != nil {
		return errgo.Mask(err)
	}

	var keys <-chan keyboard.KeyEvent
	if playFlags.keys {
		keys, err = keyboard.GetKeys(10)
		if err != nil {
			stream.Close()
			return errgo.Notef(err, "cannot read keyboard")
		}
		defer keyboard.Close()
	}

	d := sequencer.NewDispatcher(e.Params(), e.Notes(), cfg.ChannelSize)
	seq := sequencer.New(opts.vertices, opts.tempo, d)
	logger.Infof("playing %d vertices at %g bpm", seq.NumVertices(), seq.Tempo())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return audio.Play(ctx, stream) })
	g.Go(func() error { return d.Run(ctx) })
	g.Go(func() error { return control(ctx, cancel, seq, e, keys) })
	return g.Wait()
}

// control updates seq at a fixed rate and applies key presses until ctx is
// done or the quit key is pressed.
func control(ctx context.Context, quit func(), seq *sequencer.Sequence, e *audio.Engine, keys <-chan keyboard.KeyEvent) error {
	ticker := time.NewTicker(time.Second / updateRate)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			seq.Update(now.Sub(last).Seconds())
			last = now
		case ev := <-keys:
			if ev.Err != nil {
				return errgo.Notef(ev.Err, "keyboard")
			}
			if handleKey(ev, seq, e) {
				logger.Infof("quit")
				quit()
				return nil
			}
		}
	}
}

// handleKey applies one key press and reports whether it asks to quit.
func handleKey(ev keyboard.KeyEvent, seq *sequencer.Sequence, e *audio.Engine) bool {
	switch {
	case ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC || ev.Rune == 'q':
		return true
	case ev.Rune == '+' || ev.Rune == '=':
		seq.SetTempo(seq.Tempo() + tempoStep)
	case ev.Rune == '-':
		seq.SetTempo(max(minTempo, seq.Tempo()-tempoStep))
	case ev.Rune == ']':
		seq.SetNumVertices(seq.NumVertices() + 1)
	case ev.Rune == '[':
		seq.SetNumVertices(seq.NumVertices() - 1)
	case ev.Rune == 'r':
		seq.Reset()
	case ev.Rune == 'k':
		e.KillAll()
		logger.Infof("all voices killed")
		return false
	default:
		return false
	}
	logger.Infof("%d vertices at %g bpm", seq.NumVertices(), seq.Tempo())
	return false
}
