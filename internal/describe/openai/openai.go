// Package openai implements the remote-instruct documentation tier using
// OpenAI's Chat Completions API.
//
// The call is bounded by the configured timeout and is never retried: on
// expiry or any non-2xx response the selector advances to the next tier.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/whis-19/Kodo-Koe/internal/config"
	"github.com/whis-19/Kodo-Koe/internal/fallback"
	"github.com/whis-19/Kodo-Koe/internal/message"
)

const systemPrompt = "You are a code documentation assistant. " +
	"Summarize what the given source code does in two or three plain sentences " +
	"suitable for reading aloud. Mention the main functions, classes, and imports. " +
	"Do not include code, markdown, or headings."

// Describer calls the hosted instruction-tuned model.
type Describer struct {
	apiKey   string
	endpoint string
	model    string
	timeout  time.Duration
	client   *http.Client
}

// New creates a remote describer from config.
func New(cfg config.RemoteConfig) *Describer {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Describer{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		timeout:  timeout,
		client:   &http.Client{},
	}
}

// Method returns the tier tag.
func (d *Describer) Method() message.DocMethod { return message.DocRemoteInstruct }

// Describe sends the code to the Chat Completions API and returns the summary.
func (d *Describer) Describe(ctx context.Context, code string) (string, error) {
	if d.apiKey == "" {
		return "", fallback.Unavailable("no API token configured")
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	reqBody := chatRequest{
		Model: d.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: code},
		},
		Temperature: 0.2,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshalling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("chat failed (status %d): %s", resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from chat API")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	slog.Debug("remote description complete", "model", d.model, "length", len(content))
	return content, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
