// Package media wraps ffmpeg and ffprobe for the audio operations the
// pipeline needs: converting downloaded streams to WAV, probing
// duration, and cutting per-turn slices.
//
// Slice offsets are clamped to the asset bounds so a final turn that
// slightly overruns the file due to floating-point rounding still
// extracts cleanly instead of failing.
package media
