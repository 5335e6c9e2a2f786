// Command shapeseq plays a polygon step sequencer through a polyphonic sine
// synthesizer, live or rendered to a WAV file.
package main

import (
	"os"

	"github.com/gordonklaus/polyshape/audio"
	"github.com/gordonklaus/polyshape/sequencer"
	"github.com/juju/loggo"
	"github.com/spf13/cobra"
	"gopkg.in/errgo.v1"
)

var logger = loggo.GetLogger("polyshape")

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shapeseq",
	Short: "Polygon step sequencer driving a polyphonic sine synth",
	Long: `shapeseq moves a playhead around a regular polygon once per bar.
Each vertex the playhead reaches triggers a decaying sine note; the first
vertex sounds an octave above the rest.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configureLogging,
}

type options struct {
	vertices int
	tempo    float64
	rate     float64
	frames   int
	queue    int
	logSpec  string
}

var opts options

func init() {
	def := audio.DefaultConfig()
	f := rootCmd.PersistentFlags()
	f.IntVarP(&opts.vertices, "vertices", "n", 5, "number of polygon vertices (3 to 8)")
	f.Float64VarP(&opts.tempo, "tempo", "t", 120, "tempo in beats per minute")
	f.Float64Var(&opts.rate, "rate", def.SampleRate, "sample rate in Hz")
	f.IntVar(&opts.frames, "frames", def.FramesPerBuffer, "frames per audio buffer")
	f.IntVar(&opts.queue, "queue", def.ChannelSize, "capacity of the note channel")
	f.StringVar(&opts.logSpec, "log", "<root>=INFO", "logging configuration, e.g. polyshape.sequencer=TRACE")

	rootCmd.AddCommand(playCmd, renderCmd)
}

func configureLogging(cmd *cobra.Command, args []string) error {
	if err := loggo.ConfigureLoggers(opts.logSpec); err != nil {
		return errgo.Notef(err, "bad --log value")
	}
	return nil
}

func (o options) config() (audio.Config, error) {
	switch {
	case o.tempo <= 0:
		return audio.Config{}, errgo.Newf("tempo must be positive, got %g", o.tempo)
	case o.rate <= 0:
		return audio.Config{}, errgo.Newf("sample rate must be positive, got %g", o.rate)
	case o.frames <= 0:
		return audio.Config{}, errgo.Newf("frames per buffer must be positive, got %d", o.frames)
	case o.vertices < sequencer.MinVertices || o.vertices > sequencer.MaxVertices:
		logger.Warningf("clamping %d vertices to [%d, %d]", o.vertices, sequencer.MinVertices, sequencer.MaxVertices)
	}
	return audio.Config{
		SampleRate:      o.rate,
		FramesPerBuffer: o.frames,
		ChannelSize:     max(1, o.queue),
	}, nil
}
