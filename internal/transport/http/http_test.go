package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/whis-19/Kodo-Koe/internal/convert"
	"github.com/whis-19/Kodo-Koe/internal/describe"
	"github.com/whis-19/Kodo-Koe/internal/message"
	"github.com/whis-19/Kodo-Koe/internal/speech"
)

// testServer serves the API backed by the guaranteed tiers only.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	converter := convert.New(describe.NewSelector(600), speech.NewChain())
	tr := New(0)
	srv := httptest.NewServer(tr.routes(converter.Convert))
	t.Cleanup(srv.Close)
	return srv
}

func TestSynthesize_EndToEnd(t *testing.T) {
	srv := testServer(t)

	body := `{"code": "def add(a, b):\n    return a + b"}`
	resp, err := http.Post(srv.URL+"/synthesize", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /synthesize error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("Content-Type = %q, want audio/wav", ct)
	}
	if got := resp.Header.Get("X-Doc-Method"); got != string(message.DocRuleBased) {
		t.Errorf("X-Doc-Method = %q, want %q", got, message.DocRuleBased)
	}
	if desc := resp.Header.Get("X-Description"); !strings.Contains(desc, "1 function") {
		t.Errorf("X-Description = %q, want mention of 1 function", desc)
	}
	ttsMethod := message.TTSMethod(resp.Header.Get("X-TTS-Method"))
	if ttsMethod != message.TTSAlgorithmic && ttsMethod != message.TTSTone {
		t.Errorf("X-TTS-Method = %q, want a guaranteed local tier", ttsMethod)
	}

	wav := make([]byte, 12)
	if _, err := io.ReadFull(resp.Body, wav); err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("body is not a WAV container")
	}
}

func TestSynthesize_EmptyCode(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/synthesize", "application/json", strings.NewReader(`{"code": ""}`))
	if err != nil {
		t.Fatalf("POST /synthesize error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (empty code is valid input)", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Doc-Method"); got != string(message.DocRuleBased) {
		t.Errorf("X-Doc-Method = %q, want %q", got, message.DocRuleBased)
	}
	if resp.ContentLength <= 44 {
		t.Errorf("ContentLength = %d, want audio beyond the WAV header (floor duration)", resp.ContentLength)
	}
}

func TestSynthesize_MalformedBody(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "print('hi')"},
		{name: "wrong type", body: `{"code": 42}`},
		{name: "unknown field", body: `{"source": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/synthesize", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST /synthesize error = %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Errorf("status = %q, want %q", payload["status"], "healthy")
	}
}

func TestIndexPage(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestHeaderSafe(t *testing.T) {
	got := headerSafe("line one\nline two\r\n  spaced")
	if strings.ContainsAny(got, "\r\n") {
		t.Errorf("headerSafe() = %q, contains line breaks", got)
	}
	if got != "line one line two spaced" {
		t.Errorf("headerSafe() = %q, want %q", got, "line one line two spaced")
	}
}
