package pyannote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/protokoll/diarization"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatalf("write temp audio: %v", err)
	}
	return path
}

func TestDiarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diarize" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("missing audio part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"segments": [
				{"speaker_id": "SPEAKER_00", "start_time": 0.5, "end_time": 4.2},
				{"speaker_id": "SPEAKER_01", "start_time": 4.2, "end_time": 9.8}
			],
			"num_speakers": 2
		}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	resp, err := p.Diarize(context.Background(), diarization.DiarizationRequest{
		AudioPath: writeTempAudio(t),
	})
	if err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	if resp.NumSpeakers != 2 {
		t.Errorf("NumSpeakers = %d, want 2", resp.NumSpeakers)
	}
	if len(resp.Turns) != 2 {
		t.Fatalf("len(Turns) = %d, want 2", len(resp.Turns))
	}
	want := diarization.Turn{Speaker: "SPEAKER_00", Start: 0.5, End: 4.2}
	if resp.Turns[0] != want {
		t.Errorf("Turns[0] = %+v, want %+v", resp.Turns[0], want)
	}
}

func TestDiarizeBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"segments": [], "error": "model not loaded"}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	_, err := p.Diarize(context.Background(), diarization.DiarizationRequest{
		AudioPath: writeTempAudio(t),
	})
	if err == nil {
		t.Fatal("expected error for backend failure")
	}
}

func TestDiarizeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	_, err := p.Diarize(context.Background(), diarization.DiarizationRequest{
		AudioPath: writeTempAudio(t),
	})
	if err == nil {
		t.Fatal("expected error for status 500")
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

	p := NewProvider(Config{BaseURL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("IsAvailable = false, want true")
	}

	srv.Close()
	if p.IsAvailable(context.Background()) {
		t.Error("IsAvailable = true after server shutdown, want false")
	}
}
