// Package pipeline orchestrates the transcript protocol pipeline:
// acquire audio, diarize it into speaker turns, transcribe each turn,
// and persist the normalized protocol.
//
// The driver is a sequential state machine (ACQUIRING, DIARIZING,
// TRANSCRIBING, DONE, FAILED). Every stage checks the job store for its
// artifact before doing work, so re-running a job resumes from whatever
// already exists on disk. An existing protocol.json short-circuits the
// whole run: it is the single source of truth for "job complete".
//
// The driver holds at most one in-flight protocol in memory and runs
// stages strictly in order. Callers that run jobs concurrently must
// serialize by job directory; the driver does no locking of its own.
package pipeline
