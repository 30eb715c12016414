// Package speech converts text into an audio waveform.
//
// A Chain owns an ordered list of synthesis engines of decreasing quality:
// a neural TTS server, the OS speech engine, deterministic speech-cadence
// synthesis, and finally a pure-tone placeholder. The first engine to
// produce audio wins; the two signal-generation tails have no external
// dependencies, so the chain never fails.
package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/whis-19/Kodo-Koe/internal/fallback"
	"github.com/whis-19/Kodo-Koe/internal/message"
)

const (
	// SampleRate is the fixed output rate for the signal-generation tiers.
	// External engines may report their own rate.
	SampleRate = 22050

	// minDuration floors output so trivial input still yields audible audio.
	minDuration = 300 * time.Millisecond

	// maxDuration ceilings output to bound the response size.
	maxDuration = 30 * time.Second

	// maxSpeakChars bounds the text entering any engine.
	maxSpeakChars = 1000
)

// Opts controls synthesis behavior.
type Opts struct {
	// Voice optionally pins an engine-specific voice/model. Engines that do
	// not support voice selection ignore it.
	Voice string
}

// Result holds the raw output of one engine.
type Result struct {
	Samples    []int16
	SampleRate int
}

// Engine converts text to audio. An engine may legitimately report
// fallback.ErrUnavailable when its backing dependency is missing; the chain
// treats that identically to a runtime failure.
type Engine interface {
	// Method returns the tier tag this engine produces.
	Method() message.TTSMethod

	// Synthesize generates mono PCM samples from the given text.
	Synthesize(ctx context.Context, text string, opts Opts) (*Result, error)
}

// Chain runs the synthesis engine chain.
type Chain struct {
	engines []Engine
}

// NewChain builds a chain from the preferred engines, in order. The
// algorithmic and tone tiers are always appended as the guaranteed tail.
func NewChain(preferred ...Engine) *Chain {
	return &Chain{
		engines: append(append([]Engine{}, preferred...), NewAlgorithmic(), NewTone()),
	}
}

// Synthesize produces audio for the given text. It never fails on engine
// unavailability; the returned error indicates chain exhaustion, which
// cannot happen unless the dependency-free tone tier itself is broken.
func (c *Chain) Synthesize(ctx context.Context, text string, opts Opts) (message.AudioResult, error) {
	text = Sanitize(text)

	tiers := make([]fallback.Tier[message.TTSMethod, *Result], 0, len(c.engines))
	for _, e := range c.engines {
		e := e
		tiers = append(tiers, fallback.Tier[message.TTSMethod, *Result]{
			Tag: e.Method(),
			Attempt: func(ctx context.Context) (*Result, error) {
				res, err := e.Synthesize(ctx, text, opts)
				if err != nil {
					return nil, err
				}
				if res == nil || len(res.Samples) == 0 {
					return nil, fmt.Errorf("engine returned no samples")
				}
				return res, nil
			},
		})
	}

	out, err := fallback.First(ctx, "speech", tiers)
	if err != nil {
		return message.AudioResult{}, fmt.Errorf("speech chain: %w", err)
	}

	return message.AudioResult{
		Samples:    out.Value.Samples,
		SampleRate: out.Value.SampleRate,
		Method:     out.Tag,
	}, nil
}

// Sanitize bounds and cleans text before synthesis: characters outside the
// speakable set become spaces, runs of whitespace collapse, and overlong
// text is cut at a word boundary.
func Sanitize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.' || r == ',' || r == '?' || r == '!':
			sb.WriteRune(r)
		default:
			sb.WriteByte(' ')
		}
	}

	cleaned := strings.Join(strings.Fields(sb.String()), " ")
	if len(cleaned) <= maxSpeakChars {
		return cleaned
	}
	cut := cleaned[:maxSpeakChars]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}

// bound applies the duration floor and ceiling to generated samples.
// Short output is extended with a soft deterministic tail rather than
// silence; long output is cut at the ceiling.
func bound(samples []int16, sampleRate int) []int16 {
	floor := int(minDuration.Seconds() * float64(sampleRate))
	ceil := int(maxDuration.Seconds() * float64(sampleRate))

	if len(samples) > ceil {
		return samples[:ceil]
	}
	for len(samples) < floor {
		samples = append(samples, softTail(floor-len(samples), sampleRate)...)
	}
	return samples
}
