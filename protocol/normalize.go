package protocol

import (
	"regexp"
	"strings"
)

// MinSegmentDuration is the shortest segment, in seconds, that survives
// filtering. Anything shorter is treated as diarization noise.
const MinSegmentDuration = 1.0

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize cleans, filters, and squashes segments, in that order.
// The order matters: cleaning first so filtering never sees
// whitespace-only differences, filtering before squashing so a dropped
// short segment cannot bridge two same-speaker groups it sat between.
// The input slice is not modified.
func Normalize(segments []Segment) []Segment {
	return Squash(Filter(Clean(segments)))
}

// Clean collapses runs of whitespace in each segment's text to a single
// space and trims leading and trailing whitespace.
func Clean(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	for i, seg := range segments {
		seg.Text = strings.TrimSpace(whitespaceRe.ReplaceAllString(seg.Text, " "))
		out[i] = seg
	}
	return out
}

// Filter drops segments shorter than MinSegmentDuration. Malformed
// segments with End <= Start are dropped rather than reported.
func Filter(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Duration() >= MinSegmentDuration {
			out = append(out, seg)
		}
	}
	return out
}

// Squash folds consecutive segments sharing a speaker label into one.
// The merged segment spans from the first Start to the last End and
// space-joins the constituent texts in order. Same-speaker segments
// separated by another speaker are never merged.
func Squash(segments []Segment) []Segment {
	if len(segments) == 0 {
		return []Segment{}
	}
	out := make([]Segment, 0, len(segments))
	out = append(out, segments[0])
	for _, seg := range segments[1:] {
		last := &out[len(out)-1]
		if seg.Speaker == last.Speaker {
			last.End = seg.End
			last.Text = joinTexts(last.Text, seg.Text)
			continue
		}
		out = append(out, seg)
	}
	return out
}

func joinTexts(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}
