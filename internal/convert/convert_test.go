package convert

import (
	"context"
	"strings"
	"testing"

	"github.com/whis-19/Kodo-Koe/internal/describe"
	"github.com/whis-19/Kodo-Koe/internal/message"
	"github.com/whis-19/Kodo-Koe/internal/speech"
)

// guaranteed builds a converter with no external backends configured, the
// way the daemon runs on a bare host.
func guaranteed() *Converter {
	return New(describe.NewSelector(600), speech.NewChain())
}

func TestConvert_SimpleFunction(t *testing.T) {
	resp, err := guaranteed().Convert(context.Background(), &message.CodeSubmission{
		Code: "def add(a, b):\n    return a + b",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if resp.Analysis.Method != message.DocRuleBased {
		t.Errorf("Analysis.Method = %q, want %q", resp.Analysis.Method, message.DocRuleBased)
	}
	if !strings.Contains(resp.Analysis.Description, "1 function") {
		t.Errorf("Description = %q, want mention of 1 function", resp.Analysis.Description)
	}
	if resp.Audio.Method != message.TTSAlgorithmic && resp.Audio.Method != message.TTSTone {
		t.Errorf("Audio.Method = %q, want a guaranteed local tier", resp.Audio.Method)
	}
	if len(resp.Audio.Samples) == 0 {
		t.Error("Audio.Samples is empty")
	}
	if resp.Audio.SampleRate <= 0 {
		t.Errorf("Audio.SampleRate = %d, want > 0", resp.Audio.SampleRate)
	}
}

func TestConvert_EmptySubmission(t *testing.T) {
	resp, err := guaranteed().Convert(context.Background(), &message.CodeSubmission{Code: ""})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if resp.Analysis.Method != message.DocRuleBased {
		t.Errorf("Analysis.Method = %q, want %q", resp.Analysis.Method, message.DocRuleBased)
	}
	if resp.Analysis.Description != describe.Placeholder {
		t.Errorf("Description = %q, want placeholder", resp.Analysis.Description)
	}
	if len(resp.Audio.Samples) == 0 {
		t.Error("Audio.Samples is empty; floor duration should apply to empty input")
	}
	if resp.Audio.Duration() <= 0 {
		t.Errorf("Audio.Duration() = %v, want > 0", resp.Audio.Duration())
	}
}

func TestConvert_ModelIDIgnoredByGuaranteedTiers(t *testing.T) {
	resp, err := guaranteed().Convert(context.Background(), &message.CodeSubmission{
		Code:    "class Greeter:\n    pass",
		ModelID: "local",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(resp.Audio.Samples) == 0 {
		t.Error("Audio.Samples is empty")
	}
	if !resp.Audio.Method.Valid() {
		t.Errorf("Audio.Method = %q, not in the defined set", resp.Audio.Method)
	}
}
