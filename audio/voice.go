package audio

const (
	NumVoices    = 16
	MaxBlockSize = 64
)

// A Voice is one sounding note.
type Voice struct {
	ID   uint64
	Note float64
	Osc  SineOsc

	envelope Envelope
	envIdx   int
}

func (v *Voice) EnvelopePosition() int { return v.envIdx }

// EnvelopeFinished reports whether the envelope cursor has moved strictly
// past the end of the table.
func (v *Voice) EnvelopeFinished() bool { return v.envIdx > len(v.envelope) }

// nextEnvelopeBlock writes the next n envelope gains into block and advances
// the cursor by n.  Positions past the end of the table read as zero.
func (v *Voice) nextEnvelopeBlock(block []float64, n int) {
	k := 0
	if v.envIdx < len(v.envelope) {
		k = copy(block[:n], v.envelope[v.envIdx:])
	}
	clear(block[k:n])
	v.envIdx += n
}

// A VoiceHandler owns a fixed pool of voices.  All of its methods are meant
// to be called from the audio callback only.
type VoiceHandler struct {
	params   *Params
	envelope Envelope
	voices   [NumVoices]Voice
	active   [NumVoices]bool
	lastID   uint64
	envBlock [MaxBlockSize]float64
}

func NewVoiceHandler(p *Params, env Envelope) *VoiceHandler {
	return &VoiceHandler{params: p, envelope: env}
}

// StartVoice puts a new voice for note into the lowest empty slot.  When all
// slots are busy the voice with the smallest id is replaced.
func (h *VoiceHandler) StartVoice(note float64) *Voice {
	i := h.freeSlot()
	if i < 0 {
		i = h.oldest()
	}
	h.lastID++
	h.voices[i] = Voice{
		ID:       h.lastID,
		Note:     note,
		Osc:      NewSineOsc(NoteToFreq(note), h.params.SampleRate()),
		envelope: h.envelope,
	}
	h.active[i] = true
	return &h.voices[i]
}

func (h *VoiceHandler) freeSlot() int {
	for i, a := range h.active {
		if !a {
			return i
		}
	}
	return -1
}

func (h *VoiceHandler) oldest() int {
	j := -1
	for i := range h.voices {
		if h.active[i] && (j < 0 || h.voices[i].ID < h.voices[j].ID) {
			j = i
		}
	}
	return j
}

// ProcessBlock mixes every active voice into frames [start, end) of buf.
// end-start must not exceed MaxBlockSize.
func (h *VoiceHandler) ProcessBlock(buf Buffer, start, end int) {
	n := end - start
	env := h.envBlock[:n]
	for i := range h.voices {
		if !h.active[i] {
			continue
		}
		v := &h.voices[i]
		v.nextEnvelopeBlock(env, n)
		for j, amp := range env {
			x := float32(v.Osc.Process() * amp)
			k := 2 * (start + j)
			buf[k] += x
			buf[k+1] += x
		}
	}
}

func (h *VoiceHandler) TerminateFinishedVoices() {
	for i := range h.voices {
		if h.active[i] && h.voices[i].EnvelopeFinished() {
			h.active[i] = false
		}
	}
}

func (h *VoiceHandler) KillActiveVoices() {
	clear(h.active[:])
}

// Voice returns the voice in slot i, or nil if the slot is empty.
func (h *VoiceHandler) Voice(i int) *Voice {
	if !h.active[i] {
		return nil
	}
	return &h.voices[i]
}

// IsVoiceActive reports whether any slot holds a sounding voice.
func (h *VoiceHandler) IsVoiceActive() bool {
	for _, a := range h.active {
		if a {
			return true
		}
	}
	return false
}

func (h *VoiceHandler) NumActive() int {
	n := 0
	for _, a := range h.active {
		if a {
			n++
		}
	}
	return n
}

// setEnvelope makes env the table for voices started from now on and
// retunes the sounding voices to the current sample rate.
func (h *VoiceHandler) setEnvelope(env Envelope) {
	h.envelope = env
	sr := h.params.SampleRate()
	for i := range h.voices {
		if h.active[i] {
			v := &h.voices[i]
			v.Osc.SetFrequency(NoteToFreq(v.Note), sr)
		}
	}
}
