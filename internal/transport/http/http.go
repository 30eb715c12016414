// Package http implements the HTTP API transport for kodokoe.
//
// It exposes the synthesize endpoint (JSON in, WAV out with metadata
// headers), the health contract, a small built-in web page, and the
// Swagger UI.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/whis-19/Kodo-Koe/internal/health"
	"github.com/whis-19/Kodo-Koe/internal/message"
	"github.com/whis-19/Kodo-Koe/internal/speech"
	"github.com/whis-19/Kodo-Koe/internal/transport"
)

// maxBodyBytes bounds the submission size; larger payloads are InvalidInput.
const maxBodyBytes = 5 << 20

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port   int
	server *http.Server
}

// New creates a new HTTP transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// routes builds the API mux for the given handler.
func (t *Transport) routes(handler transport.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /synthesize", func(w http.ResponseWriter, r *http.Request) {
		t.handleSynthesize(w, r, handler)
	})

	mux.HandleFunc("GET /health", health.Handler())

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexPage))
	})

	// Swagger UI — serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return mux
}

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	mux := t.routes(handler)

	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// handleSynthesize processes a POST /synthesize request.
//
// @Summary     Convert source code to a spoken audio summary
// @Description Generates a natural-language description of the submitted code and
// @Description synthesizes it into audio. Backend degradation never fails the request;
// @Description the X-Doc-Method and X-TTS-Method headers report which tier produced
// @Description each stage of the result.
// @Tags        synthesize
// @Accept      json
// @Produce     audio/wav
// @Param       submission  body  message.CodeSubmission  true  "Code submission"
// @Success     200  {file}    file    "WAV audio of the spoken description"
// @Header      200  {string}  X-Description  "Generated description"
// @Header      200  {string}  X-Doc-Method   "Documentation tier used"
// @Header      200  {string}  X-TTS-Method   "Speech tier used"
// @Failure     400  {string}  string  "Malformed or oversized request body"
// @Failure     500  {string}  string  "Guaranteed tier failure (environment fault)"
// @Router      /synthesize [post]
func (t *Transport) handleSynthesize(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	var sub message.CodeSubmission

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sub); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	sub.Timestamp = time.Now()

	resp, err := handler(r.Context(), &sub)
	if err != nil {
		// Only a broken guaranteed tier lands here; worth a crash report.
		slog.Error("conversion failed", "error", err)
		sentry.CaptureException(err)
		http.Error(w, "conversion error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	wav := speech.EncodeWAV(resp.Audio.Samples, resp.Audio.SampleRate)

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(wav)))
	w.Header().Set("X-Description", headerSafe(resp.Analysis.Description))
	w.Header().Set("X-Doc-Method", string(resp.Analysis.Method))
	w.Header().Set("X-TTS-Method", string(resp.Audio.Method))
	if resp.Analysis.Note != "" {
		w.Header().Set("X-Doc-Note", headerSafe(resp.Analysis.Note))
	}
	_, _ = w.Write(wav)
}

// headerSafe flattens model output into a single legal header line.
func headerSafe(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}
