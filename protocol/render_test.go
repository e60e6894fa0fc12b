package protocol

import (
	"bytes"
	"testing"
)

func TestWriteText(t *testing.T) {
	segs := []Segment{
		{Start: 0.5, End: 3.0, Speaker: "SPEAKER_00", Text: "there you"},
		{Start: 3.4, End: 5.0, Speaker: "SPEAKER_01", Text: "go on"},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, segs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SPEAKER_00 from 0.50 to 3.00: there you\nSPEAKER_01 from 3.40 to 5.00: go on\n"
	if buf.String() != want {
		t.Fatalf("WriteText:\n got %q\nwant %q", buf.String(), want)
	}
}

func TestWritePrepared(t *testing.T) {
	segs := []Segment{
		{Start: 0.5, End: 3.0, Speaker: "SPEAKER_00", Text: "there you"},
		{Start: 63.9, End: 70.0, Speaker: "SPEAKER_01", Text: "go on"},
	}
	var buf bytes.Buffer
	if err := WritePrepared(&buf, segs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// %.0f rounds to the nearest integer second.
	want := "0;there you\n64;go on\n"
	if buf.String() != want {
		t.Fatalf("WritePrepared:\n got %q\nwant %q", buf.String(), want)
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
