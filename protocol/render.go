package protocol

import (
	"fmt"
	"io"
)

// WriteText renders segments in the human-readable protocol form, one
// line per segment:
//
//	SPEAKER_00 from 0.50 to 3.00: there you
func WriteText(w io.Writer, segments []Segment) error {
	for _, seg := range segments {
		_, err := fmt.Fprintf(w, "%s from %.2f to %.2f: %s\n", seg.Speaker, seg.Start, seg.End, seg.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

// WritePrepared renders segments in the compact prepared form consumed
// by downstream tooling, one line per segment:
//
//	1;there you
func WritePrepared(w io.Writer, segments []Segment) error {
	for _, seg := range segments {
		if _, err := fmt.Fprintf(w, "%.0f;%s\n", seg.Start, seg.Text); err != nil {
			return err
		}
	}
	return nil
}
