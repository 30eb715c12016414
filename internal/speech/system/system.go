// Package system implements the system-tts tier by shelling out to the
// OS speech engine.
//
// It probes the PATH once for a known engine (macOS say, espeak-ng, espeak,
// flite) and reuses that handle for the life of the process. A host with
// none of them installed simply reports the tier unavailable.
package system

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/whis-19/Kodo-Koe/internal/fallback"
	"github.com/whis-19/Kodo-Koe/internal/message"
	"github.com/whis-19/Kodo-Koe/internal/speech"
)

// candidates are probed in order when no engine is pinned in config.
var candidates = []string{"say", "espeak-ng", "espeak", "flite"}

// Engine implements speech.Engine over an OS speech binary.
type Engine struct {
	pinned string // optional binary name from config

	probeOnce sync.Once
	binary    string
	path      string
	probeErr  error
}

// New creates a system engine. pinned optionally names the binary to use;
// empty means probe the PATH for known engines.
func New(pinned string) *Engine {
	return &Engine{pinned: pinned}
}

// Method returns the tier tag.
func (e *Engine) Method() message.TTSMethod { return message.TTSSystem }

// probe locates the speech binary once. Concurrent first requests share the
// single probe; afterwards the handle is read-only.
func (e *Engine) probe() error {
	e.probeOnce.Do(func() {
		names := candidates
		if e.pinned != "" {
			names = []string{e.pinned}
		}
		for _, name := range names {
			if path, err := exec.LookPath(name); err == nil {
				e.binary = name
				e.path = path
				slog.Info("system speech engine found", "engine", name, "path", path)
				return
			}
		}
		e.probeErr = fallback.Unavailable("no system speech engine on PATH")
	})
	return e.probeErr
}

// Synthesize runs the engine and decodes its WAV output into samples.
func (e *Engine) Synthesize(ctx context.Context, text string, _ speech.Opts) (*speech.Result, error) {
	if err := e.probe(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("empty text for synthesis")
	}

	wav, err := e.run(ctx, text)
	if err != nil {
		return nil, err
	}

	samples, rate, err := speech.DecodeWAV(wav)
	if err != nil {
		return nil, fmt.Errorf("decoding %s output: %w", e.binary, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%s produced empty audio", e.binary)
	}
	return &speech.Result{Samples: samples, SampleRate: rate}, nil
}

// run invokes the engine. espeak variants stream WAV to stdout; say and
// flite only write files, so those go through a temp file.
func (e *Engine) run(ctx context.Context, text string) ([]byte, error) {
	switch e.binary {
	case "espeak-ng", "espeak":
		var out bytes.Buffer
		cmd := exec.CommandContext(ctx, e.path, "--stdout", text)
		cmd.Stdout = &out
		if err := cmd.Run(); err != nil {
			return nil, fmt.Errorf("%s: %w", e.binary, err)
		}
		return out.Bytes(), nil

	case "say", "flite":
		dir, err := os.MkdirTemp("", "kodokoe-tts-")
		if err != nil {
			return nil, fmt.Errorf("temp dir: %w", err)
		}
		defer os.RemoveAll(dir)
		outPath := filepath.Join(dir, "out.wav")

		var cmd *exec.Cmd
		if e.binary == "say" {
			cmd = exec.CommandContext(ctx, e.path,
				"-o", outPath, "--file-format=WAVE", "--data-format=LEI16@22050", text)
		} else {
			cmd = exec.CommandContext(ctx, e.path, "-t", text, "-o", outPath)
		}
		if err := cmd.Run(); err != nil {
			return nil, fmt.Errorf("%s: %w", e.binary, err)
		}
		return os.ReadFile(outPath)

	default:
		return nil, fmt.Errorf("unknown system engine %q", e.binary)
	}
}
