// Package convert implements the core conversion pipeline.
//
// The converter receives a code submission, runs it through the
// documentation selector, feeds the resulting description to the speech
// chain, and composes both results into one response. Backend failures
// never fail the request — they only change which tier's tag appears in
// the response metadata.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/whis-19/Kodo-Koe/internal/describe"
	"github.com/whis-19/Kodo-Koe/internal/message"
	"github.com/whis-19/Kodo-Koe/internal/speech"
)

// Converter is the pipeline orchestrator.
type Converter struct {
	selector *describe.Selector
	chain    *speech.Chain
}

// New creates a Converter from the two chains.
func New(selector *describe.Selector, chain *speech.Chain) *Converter {
	return &Converter{selector: selector, chain: chain}
}

// Convert runs the full pipeline for one submission. An error here means a
// guaranteed tier is broken — a programmer or environment fault, never a
// degraded backend.
func (c *Converter) Convert(ctx context.Context, sub *message.CodeSubmission) (*message.ConversionResponse, error) {
	start := time.Now()
	logger := slog.With("code_bytes", len(sub.Code), "model_id", sub.ModelID)
	logger.Info("conversion started")

	analysis, err := c.selector.Analyze(ctx, sub.Code)
	if err != nil {
		return nil, fmt.Errorf("analyzing code: %w", err)
	}
	logger.Info("analysis complete",
		"method", string(analysis.Method),
		"description_length", len(analysis.Description))

	audio, err := c.chain.Synthesize(ctx, analysis.Description, speech.Opts{Voice: sub.ModelID})
	if err != nil {
		return nil, fmt.Errorf("synthesizing description: %w", err)
	}
	logger.Info("synthesis complete",
		"method", string(audio.Method),
		"samples", len(audio.Samples),
		"duration", audio.Duration())

	resp := &message.ConversionResponse{
		Analysis: analysis,
		Audio:    audio,
		Elapsed:  time.Since(start),
	}
	logger.Info("conversion complete", "elapsed", resp.Elapsed)
	return resp, nil
}
