// Package ollama implements the local-instruct and local-base documentation
// tiers against an Ollama-compatible endpoint.
//
// The instruct tier uses the chat API with a system prompt; the base tier
// uses raw completion with a primed prompt, for base models that were never
// instruction-tuned. Model availability is probed once per process and the
// handle is treated as read-only afterwards.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/whis-19/Kodo-Koe/internal/config"
	"github.com/whis-19/Kodo-Koe/internal/fallback"
	"github.com/whis-19/Kodo-Koe/internal/message"
)

const instructPrompt = "Summarize what the following source code does in two or " +
	"three plain sentences suitable for reading aloud. Mention the main functions, " +
	"classes, and imports. No code, no markdown."

// Describer calls a self-hosted model for one documentation tier.
type Describer struct {
	method   message.DocMethod
	endpoint string
	model    string
	timeout  time.Duration
	client   *http.Client

	probeOnce sync.Once
	probeErr  error
}

// NewInstruct creates the local-instruct tier from config.
func NewInstruct(cfg config.LocalConfig) *Describer {
	return newDescriber(cfg, message.DocLocalInstruct, cfg.InstructModel)
}

// NewBase creates the local-base tier from config.
func NewBase(cfg config.LocalConfig) *Describer {
	return newDescriber(cfg, message.DocLocalBase, cfg.BaseModel)
}

func newDescriber(cfg config.LocalConfig, method message.DocMethod, model string) *Describer {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Describer{
		method:   method,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    model,
		timeout:  timeout,
		client:   &http.Client{},
	}
}

// Method returns the tier tag.
func (d *Describer) Method() message.DocMethod { return d.method }

// probe checks once that the endpoint is reachable and the model is pulled.
// Later calls reuse the cached result; the handle is process-wide read-only
// state after the first request, even under concurrent first access.
func (d *Describer) probe(ctx context.Context) error {
	d.probeOnce.Do(func() {
		if d.endpoint == "" || d.model == "" {
			d.probeErr = fallback.Unavailable("no local endpoint or model configured")
			return
		}

		probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, d.endpoint+"/api/tags", nil)
		if err != nil {
			d.probeErr = fallback.Unavailable(err.Error())
			return
		}
		resp, err := d.client.Do(req)
		if err != nil {
			d.probeErr = fallback.Unavailable(fmt.Sprintf("local model server unreachable: %v", err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			d.probeErr = fallback.Unavailable(fmt.Sprintf("local model server status %d", resp.StatusCode))
			return
		}

		var tags struct {
			Models []struct {
				Name string `json:"name"`
			} `json:"models"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
			d.probeErr = fallback.Unavailable(fmt.Sprintf("decoding model list: %v", err))
			return
		}
		for _, m := range tags.Models {
			if m.Name == d.model || strings.SplitN(m.Name, ":", 2)[0] == d.model {
				slog.Info("local model available", "tier", string(d.method), "model", d.model)
				return
			}
		}
		d.probeErr = fallback.Unavailable(fmt.Sprintf("model %q not pulled", d.model))
	})
	return d.probeErr
}

// Describe generates a description via the local model.
func (d *Describer) Describe(ctx context.Context, code string) (string, error) {
	if err := d.probe(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if d.method == message.DocLocalInstruct {
		return d.chat(ctx, code)
	}
	return d.generate(ctx, code)
}

// chat uses the chat API for instruction-tuned models.
func (d *Describer) chat(ctx context.Context, code string) (string, error) {
	reqBody := map[string]any{
		"model":  d.model,
		"stream": false,
		"messages": []map[string]string{
			{"role": "system", "content": instructPrompt},
			{"role": "user", "content": code},
		},
	}

	var out struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := d.post(ctx, "/api/chat", reqBody, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Message.Content), nil
}

// generate uses raw completion for base models: prime with a lead-in the
// model completes rather than an instruction it cannot follow.
func (d *Describer) generate(ctx context.Context, code string) (string, error) {
	prompt := fmt.Sprintf("Source code:\n%s\n\nIn plain English, this code does the following: ", code)
	reqBody := map[string]any{
		"model":  d.model,
		"prompt": prompt,
		"stream": false,
		"raw":    true,
		"options": map[string]any{
			"num_predict": 120,
		},
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := d.post(ctx, "/api/generate", reqBody, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Response), nil
}

func (d *Describer) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("local model request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("local model failed (status %d): %s", resp.StatusCode, respBody)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding local model response: %w", err)
	}
	return nil
}
