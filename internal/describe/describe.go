// Package describe turns source code into a natural-language description.
//
// A Selector owns an ordered chain of documentation backends of decreasing
// quality: a hosted instruction-tuned model, self-hosted instruct and base
// models, and finally a built-in rule-based extractor. The first backend to
// produce a description wins; the rule-based tail guarantees the chain never
// fails, so callers always get a usable description plus a tag recording
// which tier produced it.
package describe

import (
	"context"
	"fmt"
	"strings"

	"github.com/whis-19/Kodo-Koe/internal/fallback"
	"github.com/whis-19/Kodo-Koe/internal/message"
)

// Placeholder is returned for empty submissions.
const Placeholder = "No source code was provided, so there is nothing to describe."

// Describer is the interface for documentation backends.
type Describer interface {
	// Method returns the tier tag this backend produces.
	Method() message.DocMethod

	// Describe generates a natural-language description of the code.
	Describe(ctx context.Context, code string) (string, error)
}

// Selector runs the documentation backend chain.
type Selector struct {
	backends []Describer
	maxChars int
}

// NewSelector builds a selector from the preferred backends, in order.
// The rule-based extractor is always appended as the guaranteed final tier;
// callers list only the model-backed tiers that are configured.
func NewSelector(maxChars int, preferred ...Describer) *Selector {
	if maxChars <= 0 {
		maxChars = 600
	}
	return &Selector{
		backends: append(append([]Describer{}, preferred...), NewRuleBased()),
		maxChars: maxChars,
	}
}

// Analyze produces a description for the given code. It never fails on
// backend unavailability; the returned error indicates chain exhaustion,
// which cannot happen unless the dependency-free rule tier itself is broken.
func (s *Selector) Analyze(ctx context.Context, source string) (message.AnalysisResult, error) {
	if strings.TrimSpace(source) == "" {
		return message.AnalysisResult{
			Description: Placeholder,
			Method:      message.DocRuleBased,
		}, nil
	}

	tiers := make([]fallback.Tier[message.DocMethod, string], 0, len(s.backends))
	for _, b := range s.backends {
		b := b
		tiers = append(tiers, fallback.Tier[message.DocMethod, string]{
			Tag: b.Method(),
			Attempt: func(ctx context.Context) (string, error) {
				desc, err := b.Describe(ctx, source)
				if err != nil {
					return "", err
				}
				if strings.TrimSpace(desc) == "" {
					return "", fmt.Errorf("backend returned empty description")
				}
				return desc, nil
			},
		})
	}

	out, err := fallback.First(ctx, "describe", tiers)
	if err != nil {
		return message.AnalysisResult{}, fmt.Errorf("documentation chain: %w", err)
	}

	return message.AnalysisResult{
		Description: truncate(strings.TrimSpace(out.Value), s.maxChars),
		Method:      out.Tag,
		Note:        out.Note,
	}, nil
}

// truncate bounds s to max runes, marking the cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
