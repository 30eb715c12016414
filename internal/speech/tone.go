package speech

import (
	"context"
	"math"
	"strings"

	"github.com/whis-19/Kodo-Koe/internal/message"
)

const (
	toneMs        = 180
	toneGapMs     = 70
	toneAmplitude = 0.25
)

// Tone is the last-resort placeholder tier: one audible tone per word, at a
// frequency keyed to the word's characters. Deterministic and dependency-free.
type Tone struct{}

// NewTone returns the tone synthesis engine.
func NewTone() *Tone { return &Tone{} }

// Method returns the tier tag.
func (t *Tone) Method() message.TTSMethod { return message.TTSTone }

// Synthesize generates the tone sequence. It cannot fail.
func (t *Tone) Synthesize(_ context.Context, text string, _ Opts) (*Result, error) {
	var samples []int16

	for _, word := range strings.Fields(text) {
		freq := 220.0 + float64(charSum([]rune(word))%13)*40.0
		samples = appendTone(samples, freq)
		samples = appendSilence(samples, toneGapMs)
	}

	return &Result{Samples: bound(samples, SampleRate), SampleRate: SampleRate}, nil
}

func appendTone(samples []int16, freq float64) []int16 {
	n := SampleRate * toneMs / 1000
	for j := 0; j < n; j++ {
		t := float64(j) / SampleRate
		// Short linear fade at both ends avoids clicks between tones.
		env := 1.0
		const ramp = SampleRate * 10 / 1000
		if j < ramp {
			env = float64(j) / ramp
		} else if n-j < ramp {
			env = float64(n-j) / ramp
		}
		v := toneAmplitude * env * math.Sin(2*math.Pi*freq*t)
		samples = append(samples, int16(v*math.MaxInt16))
	}
	return samples
}
