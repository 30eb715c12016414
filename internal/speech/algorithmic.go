package speech

import (
	"context"
	"math"

	"github.com/whis-19/Kodo-Koe/internal/message"
)

// Cadence timing for the algorithmic tier. The output is not intelligible
// speech; it is a deterministic signal with speech-like rhythm.
const (
	wordPauseMs   = 60
	punctPauseMs  = 220
	syllableMs    = 95
	baseFreq      = 110.0
	freqSpan      = 130.0
	algoAmplitude = 0.30
)

// Algorithmic generates a speech-cadence waveform from text. Fundamental
// frequency and envelope are keyed to the characters of each word, pauses
// to word boundaries and punctuation. Same text, same bytes, every call.
type Algorithmic struct{}

// NewAlgorithmic returns the algorithmic synthesis engine.
func NewAlgorithmic() *Algorithmic { return &Algorithmic{} }

// Method returns the tier tag.
func (a *Algorithmic) Method() message.TTSMethod { return message.TTSAlgorithmic }

// Synthesize generates the waveform. It cannot fail.
func (a *Algorithmic) Synthesize(_ context.Context, text string, _ Opts) (*Result, error) {
	var samples []int16

	word := make([]rune, 0, 16)
	flush := func(trailing rune) {
		if len(word) > 0 {
			samples = appendWord(samples, word)
			word = word[:0]
		}
		switch trailing {
		case '.', ',', '?', '!':
			samples = appendSilence(samples, punctPauseMs)
		case ' ':
			samples = appendSilence(samples, wordPauseMs)
		}
	}

	for _, r := range text {
		switch r {
		case ' ', '.', ',', '?', '!':
			flush(r)
		default:
			word = append(word, r)
		}
	}
	flush(0)

	return &Result{Samples: bound(samples, SampleRate), SampleRate: SampleRate}, nil
}

// appendWord renders one word as a run of enveloped syllable segments.
// Each character contributes a segment whose pitch wanders around the
// word's fundamental, approximating intonation.
func appendWord(samples []int16, word []rune) []int16 {
	fundamental := baseFreq + float64(charSum(word)%97)/97.0*freqSpan
	segLen := SampleRate * syllableMs / 1000

	for i, r := range word {
		// Per-character pitch drift, bounded to a third above the fundamental.
		drift := float64(int(r)%12) / 12.0
		freq := fundamental * (1.0 + drift/3.0)

		// Alternate segments dip, giving a syllabic up-down contour.
		if i%2 == 1 {
			freq *= 0.85
		}

		for j := 0; j < segLen; j++ {
			t := float64(j) / SampleRate
			// Raised-cosine envelope per segment keeps joins click-free.
			env := 0.5 * (1 - math.Cos(2*math.Pi*float64(j)/float64(segLen)))
			v := algoAmplitude * env * (math.Sin(2*math.Pi*freq*t) + 0.4*math.Sin(4*math.Pi*freq*t))
			samples = append(samples, int16(v*math.MaxInt16))
		}
	}
	return samples
}

func appendSilence(samples []int16, ms int) []int16 {
	n := SampleRate * ms / 1000
	return append(samples, make([]int16, n)...)
}

// softTail is a fading low hum used to reach the duration floor without
// dead silence.
func softTail(n, sampleRate int) []int16 {
	tail := make([]int16, n)
	for i := range tail {
		t := float64(i) / float64(sampleRate)
		env := 1.0 - float64(i)/float64(n)
		tail[i] = int16(0.12 * env * math.Sin(2*math.Pi*140*t) * math.MaxInt16)
	}
	return tail
}

func charSum(word []rune) int {
	sum := 0
	for _, r := range word {
		sum += int(r)
	}
	return sum
}
