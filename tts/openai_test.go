package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mrsingh-rishi/voice-bridge/types"
)

func newFakeOpenAITTS(t *testing.T, outputDir string, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	c, err := NewOpenAIClient(openai.NewClientWithConfig(cfg), "alloy", outputDir, "/static/output")
	if err != nil {
		t.Fatalf("NewOpenAIClient failed: %v", err)
	}
	return c
}

func TestOpenAISynthesizeWritesFile(t *testing.T) {
	dir := t.TempDir()
	c := newFakeOpenAITTS(t, dir, func(rw http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/speech") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req openai.CreateSpeechRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Input != "Hi there!" {
			t.Errorf("expected input %q, got %q", "Hi there!", req.Input)
		}
		if req.Voice != openai.VoiceAlloy {
			t.Errorf("expected voice alloy, got %q", req.Voice)
		}
		rw.Header().Set("Content-Type", "audio/mpeg")
		rw.Write([]byte("mp3 bytes"))
	})

	locator, err := c.Synthesize(context.Background(), "Hi there!")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if !strings.HasPrefix(locator, "/static/output/") || !strings.HasSuffix(locator, ".mp3") {
		t.Errorf("unexpected locator %q", locator)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(locator)))
	if err != nil {
		t.Fatalf("read synthesized file: %v", err)
	}
	if string(data) != "mp3 bytes" {
		t.Errorf("synthesized content mismatch: %q", data)
	}
}

func TestOpenAISynthesizeEmptyTextUsesFallback(t *testing.T) {
	dir := t.TempDir()
	c := newFakeOpenAITTS(t, dir, func(rw http.ResponseWriter, r *http.Request) {
		var req openai.CreateSpeechRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Input != fallbackText {
			t.Errorf("expected fallback phrase, got %q", req.Input)
		}
		rw.Write([]byte("mp3"))
	})

	if _, err := c.Synthesize(context.Background(), "   "); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
}

func TestOpenAISynthesizeUpstreamFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	c := newFakeOpenAITTS(t, dir, func(rw http.ResponseWriter, r *http.Request) {
		http.Error(rw, `{"error": {"message": "voice unavailable"}}`, http.StatusServiceUnavailable)
	})

	_, err := c.Synthesize(context.Background(), "Hi there!")
	var upstream *types.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Stage != types.StageSynthesize {
		t.Errorf("expected stage %q, got %q", types.StageSynthesize, upstream.Stage)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no artifacts after failure, found %d", len(entries))
	}
}
