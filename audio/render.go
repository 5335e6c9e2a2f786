package audio

// Render fills out by calling e.Process once per period of framesPerBuffer
// frames, as an audio device would.  After each period tick, if not nil, is
// called with the audio just rendered.
func Render(e *Engine, out Buffer, framesPerBuffer int, tick func(period Buffer)) {
	if framesPerBuffer <= 0 {
		framesPerBuffer = MaxBlockSize
	}
	for len(out) >= 2 {
		n := min(2*framesPerBuffer, len(out)&^1)
		period := out[:n]
		e.Process(period)
		if tick != nil {
			tick(period)
		}
		out = out[n:]
	}
}
