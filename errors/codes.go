package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline stage errors (not retryable by the core; the enclosing task
// runner marks the job failed and records the message verbatim)
const (
	// ErrCodeAcquisition indicates the audio download or conversion failed.
	ErrCodeAcquisition ErrorCode = "ACQUISITION_FAILED"
	// ErrCodeExtraction indicates an audio slice was out of bounds or the
	// asset is missing.
	ErrCodeExtraction ErrorCode = "EXTRACTION_FAILED"
	// ErrCodeDiarization indicates the diarization model call failed.
	ErrCodeDiarization ErrorCode = "DIARIZATION_FAILED"
	// ErrCodeTranscription indicates a transcription model call failed.
	ErrCodeTranscription ErrorCode = "TRANSCRIPTION_FAILED"
	// ErrCodeCacheCorrupted indicates a cache file exists but cannot be
	// parsed. Failing loudly avoids masking a torn write by recomputing.
	ErrCodeCacheCorrupted ErrorCode = "CACHE_CORRUPTED"
)

// Connection/Availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates a collaborator sidecar is
	// temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeConnectionFailed indicates a failed connection to a service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Resource and validation errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeExternalService indicates an error from an external service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeExternalService:    true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
