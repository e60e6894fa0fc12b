package whisper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/protokoll/transcription"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segment.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatalf("write temp audio: %v", err)
	}
	return path
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "base" {
			t.Errorf("model = %q, want %q", got, "base")
		}
		if got := r.FormValue("language"); got != "de" {
			t.Errorf("language = %q, want %q", got, "de")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": "guten morgen zusammen",
			"segments": [{"text": "guten morgen zusammen", "start": 0.0, "end": 2.4}],
			"language": "de"
		}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	resp, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{
		AudioPath: writeTempAudio(t),
		Language:  "de",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Text != "guten morgen zusammen" {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.Language != "de" {
		t.Errorf("Language = %q, want %q", resp.Language, "de")
	}
	if resp.Duration != 2.4 {
		t.Errorf("Duration = %v, want 2.4", resp.Duration)
	}
}

func TestTranscribeRequestOverridesConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "large-v3" {
			t.Errorf("model = %q, want %q", got, "large-v3")
		}
		w.Write([]byte(`{"text": "", "segments": []}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL, Model: "base"})
	_, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{
		AudioPath: writeTempAudio(t),
		Model:     "large-v3",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
}

func TestTranscribeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model load failed", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	_, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{
		AudioPath: writeTempAudio(t),
	})
	if err == nil {
		t.Fatal("expected error for status 503")
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("IsAvailable = false, want true")
	}
}
