// Package errors provides unified error handling for the protokoll
// pipeline. It implements structured error types with machine-readable
// codes, HTTP status mapping, and retryable detection following
// RFC 7807.
//
// The pipeline-specific codes mirror the stage failure taxonomy:
// acquisition, extraction, diarization, transcription, and cache
// corruption. None of them are retryable by the core; the task queue
// decides whether to resubmit a failed job.
package errors
