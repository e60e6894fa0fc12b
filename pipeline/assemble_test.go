package pipeline

import (
	"context"
	"sort"
	"testing"

	"github.com/skillsenselab/protokoll/diarization"
)

func TestSegmentID(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       string
	}{
		{name: "fractional bounds", start: 12.5, end: 17.25, want: "12_50_17_25"},
		{name: "whole seconds", start: 0, end: 2, want: "0_00_2_00"},
		{name: "sub-second precision rounds", start: 1.005, end: 3.999, want: "1_00_4_00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentID(tt.start, tt.end); got != tt.want {
				t.Errorf("segmentID(%v, %v) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestAssemblePerTurnArtifacts(t *testing.T) {
	h := newHarness(t)
	turns := []diarization.Turn{
		{Start: 0, End: 2.5, Speaker: "SPEAKER_00"},
		{Start: 2.5, End: 5, Speaker: "SPEAKER_01"},
		{Start: 5, End: 7, Speaker: "SPEAKER_00"},
	}
	h.tr.texts = []string{"one", "two", "three"}

	segments, err := h.drv.assemble(context.Background(), h.store, "/data/job/audio.wav", turns)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}
	for i, turn := range turns {
		if segments[i].Speaker != turn.Speaker || segments[i].Start != turn.Start || segments[i].End != turn.End {
			t.Errorf("segment %d = %+v, want bounds of turn %+v", i, segments[i], turn)
		}
	}

	got := h.store.SpeakerFiles()
	sort.Strings(got)
	want := []string{
		"speakers/SPEAKER_00/transcript_0_00_2_50.txt",
		"speakers/SPEAKER_00/transcript_5_00_7_00.txt",
		"speakers/SPEAKER_01/transcript_2_50_5_00.txt",
	}
	if len(got) != len(want) {
		t.Fatalf("speaker files = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("speaker file %d = %q, want %q", i, got[i], want[i])
		}
	}
	if h.audio.sliceCalls != 3 {
		t.Errorf("slice calls = %d, want 3", h.audio.sliceCalls)
	}
}

func TestAssembleTrimsTranscriptText(t *testing.T) {
	h := newHarness(t)
	h.tr.texts = []string{"  hello world \n"}

	segments, err := h.drv.assemble(context.Background(), h.store, "/data/job/audio.wav", []diarization.Turn{
		{Start: 0, End: 2, Speaker: "SPEAKER_00"},
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if segments[0].Text != "hello world" {
		t.Errorf("Text = %q, want %q", segments[0].Text, "hello world")
	}
}

func TestAssembleEmptyTurns(t *testing.T) {
	h := newHarness(t)
	segments, err := h.drv.assemble(context.Background(), h.store, "/data/job/audio.wav", nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("got %d segments, want 0", len(segments))
	}
	if h.tr.calls != 0 {
		t.Errorf("transcribe calls = %d, want 0", h.tr.calls)
	}
}
