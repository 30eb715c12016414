// Package message defines the core data types flowing through the kodokoe pipeline.
package message

import "time"

// DocMethod records which documentation tier actually produced a description.
type DocMethod string

const (
	// DocRemoteInstruct is the hosted instruction-tuned model.
	DocRemoteInstruct DocMethod = "remote-instruct"

	// DocLocalInstruct is a self-hosted instruction-tuned model.
	DocLocalInstruct DocMethod = "local-instruct"

	// DocLocalBase is a self-hosted base generation model.
	DocLocalBase DocMethod = "local-base"

	// DocRuleBased is the built-in pattern extractor. Always available.
	DocRuleBased DocMethod = "rule-based"
)

// Valid reports whether m is one of the defined documentation methods.
func (m DocMethod) Valid() bool {
	switch m {
	case DocRemoteInstruct, DocLocalInstruct, DocLocalBase, DocRuleBased:
		return true
	}
	return false
}

// TTSMethod records which speech tier actually produced audio.
type TTSMethod string

const (
	// TTSNeural is a neural text-to-speech engine (Piper).
	TTSNeural TTSMethod = "neural-tts"

	// TTSSystem is the OS-native speech engine (say, espeak, flite).
	TTSSystem TTSMethod = "system-tts"

	// TTSAlgorithmic is deterministic speech-cadence signal generation.
	TTSAlgorithmic TTSMethod = "algorithmic-synthesis"

	// TTSTone is the pure-tone placeholder. Always available.
	TTSTone TTSMethod = "tone-synthesis"
)

// Valid reports whether m is one of the defined speech methods.
func (m TTSMethod) Valid() bool {
	switch m {
	case TTSNeural, TTSSystem, TTSAlgorithmic, TTSTone:
		return true
	}
	return false
}

// CodeSubmission is a single request to convert source code into audio.
// Created per request and discarded when the response is written.
type CodeSubmission struct {
	// Code is the raw source text to describe and speak.
	Code string `json:"code"`

	// ModelID optionally pins a speech model/voice. Empty means auto-select.
	ModelID string `json:"model_id,omitempty"`

	// Timestamp is when the submission was received.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// AnalysisResult is the output of the documentation selector.
type AnalysisResult struct {
	// Description is the natural-language summary of the code. Never empty.
	Description string `json:"description"`

	// Method is the tier that produced the description.
	Method DocMethod `json:"method"`

	// Note explains why preferred tiers were skipped or failed. Set only
	// when the selector degraded past at least one configured tier.
	Note string `json:"note,omitempty"`
}

// AudioResult is the output of the speech chain.
type AudioResult struct {
	// Samples is mono PCM, one amplitude per frame, in int16 range.
	Samples []int16 `json:"-"`

	// SampleRate is in Hz.
	SampleRate int `json:"sample_rate"`

	// Method is the tier that produced the audio.
	Method TTSMethod `json:"method"`
}

// Duration returns the audio length implied by the sample count.
func (a *AudioResult) Duration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(a.Samples)) * time.Second / time.Duration(a.SampleRate)
}

// ConversionResponse composes the analysis and audio results for one submission.
// Constructed once by the orchestrator, serialized at the boundary, then discarded.
type ConversionResponse struct {
	Analysis AnalysisResult `json:"analysis"`
	Audio    AudioResult    `json:"audio"`

	// Elapsed is the total pipeline time, for logs and response metadata.
	Elapsed time.Duration `json:"elapsed"`
}
