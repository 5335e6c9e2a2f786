package audio

import "math"

func NoteToFreq(note float64) float64 { return 440 * math.Exp2((note-69)/12) }

func FreqToNote(freq float64) float64 { return 12*math.Log2(freq/440) + 69 }

func LevelToDB(level float64) float64 { return 20 * math.Log10(level) }

func DBToLevel(db float64) float64 { return math.Pow(10, db/20) }

// Lerp interpolates from a to b, clamping t to [0, 1].
func Lerp(a, b, t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return a + (b-a)*t
}

// ILerp is the inverse of Lerp: the fraction of the way from a to b at which
// x lies.  It returns 0 when a == b.
func ILerp(a, b, x float64) float64 {
	if a == b {
		return 0
	}
	return (x - a) / (b - a)
}
