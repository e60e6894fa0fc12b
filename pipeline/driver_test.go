package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/skillsenselab/protokoll/acquisition"
	"github.com/skillsenselab/protokoll/diarization"
	"github.com/skillsenselab/protokoll/job"
	"github.com/skillsenselab/protokoll/protocol"
	"github.com/skillsenselab/protokoll/transcription"
)

// --- collaborator stubs ---

type stubAcquirer struct {
	info          acquisition.VideoInfo
	infoErr       error
	downloadErr   error
	infoCalls     int
	downloadCalls int
}

func (s *stubAcquirer) Name() string                     { return "stub" }
func (s *stubAcquirer) IsAvailable(context.Context) bool { return true }

func (s *stubAcquirer) Info(ctx context.Context, url string) (*acquisition.VideoInfo, error) {
	s.infoCalls++
	if s.infoErr != nil {
		return nil, s.infoErr
	}
	info := s.info
	return &info, nil
}

func (s *stubAcquirer) Download(ctx context.Context, url, dest string) error {
	s.downloadCalls++
	return s.downloadErr
}

type stubDiarizer struct {
	turns []diarization.Turn
	err   error
	calls int
}

func (s *stubDiarizer) Name() string                     { return "stub" }
func (s *stubDiarizer) IsAvailable(context.Context) bool { return true }
func (s *stubDiarizer) Diarize(ctx context.Context, req diarization.DiarizationRequest) (*diarization.DiarizationResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &diarization.DiarizationResponse{Turns: s.turns, NumSpeakers: 2}, nil
}

type stubTranscriber struct {
	texts []string
	err   error
	calls int
}

func (s *stubTranscriber) Name() string                     { return "stub" }
func (s *stubTranscriber) IsAvailable(context.Context) bool { return true }
func (s *stubTranscriber) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	text := ""
	if s.calls <= len(s.texts) {
		text = s.texts[s.calls-1]
	}
	return &transcription.TranscriptionResponse{Text: text}, nil
}

type stubAudio struct {
	convertErr   error
	sliceErr     error
	convertCalls int
	sliceCalls   int
}

func (s *stubAudio) ConvertToWAV(ctx context.Context, src, dst string) error {
	s.convertCalls++
	return s.convertErr
}

func (s *stubAudio) Slice(ctx context.Context, src, dst string, start, end float64) error {
	s.sliceCalls++
	return s.sliceErr
}

// --- harness ---

type harness struct {
	acq   *stubAcquirer
	dia   *stubDiarizer
	tr    *stubTranscriber
	audio *stubAudio
	store *job.MemoryStore
	drv   *Driver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		acq: &stubAcquirer{info: acquisition.VideoInfo{
			URL:   "https://youtu.be/abc",
			Title: "Weekly Standup",
		}},
		dia: &stubDiarizer{turns: []diarization.Turn{
			{Start: 0, End: 2.5, Speaker: "SPEAKER_00"},
			{Start: 2.5, End: 5, Speaker: "SPEAKER_01"},
		}},
		tr:    &stubTranscriber{texts: []string{"good morning", "hi  everyone"}},
		audio: &stubAudio{},
	}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	h.store = job.NewMemoryStore(job.Dir("/data", h.acq.info.Title, now))
	h.drv = NewDriver(h.acq, h.dia, h.tr, h.audio, Options{
		OutputRoot: "/data",
		OpenStore: func(dir string) (job.Store, error) {
			if dir != h.store.Dir() {
				t.Fatalf("unexpected job dir %q, want %q", dir, h.store.Dir())
			}
			return h.store, nil
		},
		Now: func() time.Time { return now },
	})
	return h
}

// --- tests ---

func TestRunFullPipeline(t *testing.T) {
	h := newHarness(t)
	res := h.drv.Run(context.Background(), "https://youtu.be/abc")

	if res.Status != StatusSuccess {
		t.Fatalf("Status = %q, want success (error: %s)", res.Status, res.Error)
	}
	if res.ProtocolPath != h.store.Path(job.ArtifactProtocol) {
		t.Errorf("ProtocolPath = %q", res.ProtocolPath)
	}
	if res.JobDir != h.store.Dir() {
		t.Errorf("JobDir = %q, want %q", res.JobDir, h.store.Dir())
	}

	if h.acq.downloadCalls != 1 || h.audio.convertCalls != 1 {
		t.Errorf("download/convert calls = %d/%d, want 1/1", h.acq.downloadCalls, h.audio.convertCalls)
	}
	if h.dia.calls != 1 {
		t.Errorf("diarize calls = %d, want 1", h.dia.calls)
	}
	if h.tr.calls != 2 || h.audio.sliceCalls != 2 {
		t.Errorf("transcribe/slice calls = %d/%d, want 2/2", h.tr.calls, h.audio.sliceCalls)
	}

	for _, a := range []job.Artifact{job.ArtifactMeta, job.ArtifactDiarization, job.ArtifactProtocol, job.ArtifactProtocolText} {
		if !h.store.Has(a) {
			t.Errorf("artifact %s not persisted", a)
		}
	}

	data, err := h.store.Load(job.ArtifactProtocol)
	if err != nil {
		t.Fatalf("load protocol: %v", err)
	}
	var got []protocol.Segment
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal protocol: %v", err)
	}
	want := []protocol.Segment{
		{Start: 0, End: 2.5, Speaker: "SPEAKER_00", Text: "good morning"},
		{Start: 2.5, End: 5, Speaker: "SPEAKER_01", Text: "hi everyone"},
	}
	if len(got) != len(want) {
		t.Fatalf("protocol has %d segments, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRunProtocolGateSkipsEverything(t *testing.T) {
	h := newHarness(t)
	if err := h.store.Save(job.ArtifactProtocol, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	res := h.drv.Run(context.Background(), "https://youtu.be/abc")
	if res.Status != StatusSuccess {
		t.Fatalf("Status = %q, want success", res.Status)
	}
	if res.ProtocolPath != h.store.Path(job.ArtifactProtocol) {
		t.Errorf("ProtocolPath = %q", res.ProtocolPath)
	}
	if h.acq.downloadCalls != 0 || h.audio.convertCalls != 0 {
		t.Errorf("download/convert calls = %d/%d, want 0/0", h.acq.downloadCalls, h.audio.convertCalls)
	}
	if h.dia.calls != 0 || h.tr.calls != 0 || h.audio.sliceCalls != 0 {
		t.Errorf("model calls = %d/%d/%d, want 0/0/0", h.dia.calls, h.tr.calls, h.audio.sliceCalls)
	}
}

func TestRunRerunIsIdempotent(t *testing.T) {
	h := newHarness(t)
	first := h.drv.Run(context.Background(), "https://youtu.be/abc")
	if first.Status != StatusSuccess {
		t.Fatalf("first run failed: %s", first.Error)
	}
	firstProtocol, _ := h.store.Load(job.ArtifactProtocol)

	second := h.drv.Run(context.Background(), "https://youtu.be/abc")
	if second.Status != StatusSuccess {
		t.Fatalf("second run failed: %s", second.Error)
	}
	if h.dia.calls != 1 || h.tr.calls != 2 {
		t.Errorf("second run repeated model calls: diarize=%d transcribe=%d", h.dia.calls, h.tr.calls)
	}
	secondProtocol, _ := h.store.Load(job.ArtifactProtocol)
	if string(firstProtocol) != string(secondProtocol) {
		t.Error("protocol changed across idempotent re-run")
	}
}

func TestRunDiarizationCacheHit(t *testing.T) {
	h := newHarness(t)
	cached := []diarization.Turn{
		{Start: 1.5, End: 3.25, Speaker: "SPEAKER_01"},
		{Start: 3.25, End: 6, Speaker: "SPEAKER_00"},
	}
	data, err := json.Marshal(cached)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.store.Save(job.ArtifactDiarization, data); err != nil {
		t.Fatal(err)
	}

	res := h.drv.Run(context.Background(), "https://youtu.be/abc")
	if res.Status != StatusSuccess {
		t.Fatalf("Status = %q, want success (error: %s)", res.Status, res.Error)
	}
	if h.dia.calls != 0 {
		t.Errorf("diarize calls = %d, want 0 on cache hit", h.dia.calls)
	}

	// transcription follows the cached turn order, not the stub's
	protoData, _ := h.store.Load(job.ArtifactProtocol)
	var got []protocol.Segment
	if err := json.Unmarshal(protoData, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("protocol has %d segments, want 2", len(got))
	}
	if got[0].Speaker != "SPEAKER_01" || got[0].Start != 1.5 {
		t.Errorf("segment 0 = %+v, want cached first turn", got[0])
	}
}

func TestRunDiarizationCacheRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.dia.turns = []diarization.Turn{
		{Start: 0.123456, End: 2.654321, Speaker: "SPEAKER_00"},
		{Start: 2.654321, End: 7.0, Speaker: "SPEAKER_01"},
		{Start: 7.0, End: 9.5, Speaker: "SPEAKER_00"},
	}
	h.tr.texts = []string{"a", "b", "c"}

	res := h.drv.Run(context.Background(), "https://youtu.be/abc")
	if res.Status != StatusSuccess {
		t.Fatalf("run failed: %s", res.Error)
	}

	data, err := h.store.Load(job.ArtifactDiarization)
	if err != nil {
		t.Fatalf("load cache: %v", err)
	}
	var reloaded []diarization.Turn
	if err := json.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("unmarshal cache: %v", err)
	}
	if len(reloaded) != len(h.dia.turns) {
		t.Fatalf("round trip has %d turns, want %d", len(reloaded), len(h.dia.turns))
	}
	for i, turn := range h.dia.turns {
		if reloaded[i] != turn {
			t.Errorf("turn %d = %+v, want %+v", i, reloaded[i], turn)
		}
	}
}

func TestRunCorruptedCacheFailsFast(t *testing.T) {
	h := newHarness(t)
	if err := h.store.Save(job.ArtifactDiarization, []byte(`[{"start": 0,`)); err != nil {
		t.Fatal(err)
	}

	res := h.drv.Run(context.Background(), "https://youtu.be/abc")
	if res.Status != StatusFailure {
		t.Fatalf("Status = %q, want failure", res.Status)
	}
	if !strings.Contains(res.Error, "CACHE_CORRUPTED") {
		t.Errorf("Error = %q, want cache corruption code", res.Error)
	}
	if h.dia.calls != 0 {
		t.Errorf("diarize calls = %d, corrupted cache must not be recomputed", h.dia.calls)
	}
	if h.store.Has(job.ArtifactProtocol) {
		t.Error("protocol persisted despite failure")
	}
}

func TestRunTranscriptionFailureFailsJob(t *testing.T) {
	h := newHarness(t)
	h.tr.err = context.DeadlineExceeded

	res := h.drv.Run(context.Background(), "https://youtu.be/abc")
	if res.Status != StatusFailure {
		t.Fatalf("Status = %q, want failure", res.Status)
	}
	if !strings.Contains(res.Error, "TRANSCRIPTION_FAILED") {
		t.Errorf("Error = %q, want transcription code", res.Error)
	}
	if h.store.Has(job.ArtifactProtocol) {
		t.Error("partial protocol persisted")
	}
	// diarization cache survives so a retry resumes there
	if !h.store.Has(job.ArtifactDiarization) {
		t.Error("diarization cache missing after transcription failure")
	}
}

func TestRunDownloadFailure(t *testing.T) {
	h := newHarness(t)
	h.acq.downloadErr = context.DeadlineExceeded

	res := h.drv.Run(context.Background(), "https://youtu.be/abc")
	if res.Status != StatusFailure {
		t.Fatalf("Status = %q, want failure", res.Status)
	}
	if res.JobDir != h.store.Dir() {
		t.Errorf("JobDir = %q, want job dir even on failure", res.JobDir)
	}
	if h.dia.calls != 0 {
		t.Error("diarization ran without audio")
	}
	// metadata is still written before the failure
	if !h.store.Has(job.ArtifactMeta) {
		t.Error("meta_info.json missing")
	}
}

func TestRunMetadataFailure(t *testing.T) {
	h := newHarness(t)
	h.acq.infoErr = context.DeadlineExceeded

	res := h.drv.Run(context.Background(), "https://youtu.be/abc")
	if res.Status != StatusFailure {
		t.Fatalf("Status = %q, want failure", res.Status)
	}
	if res.JobDir != "" {
		t.Errorf("JobDir = %q, want empty when no directory was resolved", res.JobDir)
	}
}

func TestRunMetadataOverwrittenEachRun(t *testing.T) {
	h := newHarness(t)
	if err := h.store.Save(job.ArtifactMeta, []byte(`{"Title":"stale"}`)); err != nil {
		t.Fatal(err)
	}
	if err := h.store.Save(job.ArtifactProtocol, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	if res := h.drv.Run(context.Background(), "https://youtu.be/abc"); res.Status != StatusSuccess {
		t.Fatalf("run failed: %s", res.Error)
	}

	data, _ := h.store.Load(job.ArtifactMeta)
	var meta job.Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatal(err)
	}
	if meta.Title != "Weekly Standup" {
		t.Errorf("meta Title = %q, want fresh metadata", meta.Title)
	}
}
