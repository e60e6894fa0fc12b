// Package diarization defines the provider interface and common types
// for interacting with speaker diarization backends.
//
// A backend segments an audio asset into speaker turns: time-stamped
// intervals labeled with an opaque speaker token. Turn order as emitted
// by the backend is preserved end to end; the pipeline's disk cache
// round-trips it exactly.
//
// # Backends
//
//   - diarization/pyannote: Pyannote-based speaker diarization sidecar
package diarization
