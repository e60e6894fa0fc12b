package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Pipeline stage error constructors ---

// Acquisition creates a new AppError for a failed audio download or conversion.
func Acquisition(url string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeAcquisition, Message: "Audio acquisition failed for the requested source.",
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"url": url}, Cause: cause,
	}
}

// Extraction creates a new AppError for an audio slice that could not be cut.
func Extraction(reason string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExtraction, Message: fmt.Sprintf("Audio extraction failed: %s", reason),
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// Diarization creates a new AppError for a failed diarization model call.
func Diarization(cause error) *AppError {
	return &AppError{
		Code: ErrCodeDiarization, Message: "Speaker diarization failed.",
		HTTPStatus: http.StatusBadGateway, Retryable: false, Cause: cause,
	}
}

// Transcription creates a new AppError for a failed transcription model call.
// A single failed segment fails the whole job; no partial protocol is saved.
func Transcription(speaker string, start, end float64, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTranscription, Message: "Segment transcription failed.",
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"speaker": speaker, "start": start, "end": end},
		Cause:   cause,
	}
}

// CacheCorrupted creates a new AppError for an unparsable cache file.
func CacheCorrupted(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeCacheCorrupted, Message: fmt.Sprintf("Cache file %s exists but cannot be parsed.", path),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"path": path}, Cause: cause,
	}
}

// --- Common constructors ---

// ServiceUnavailable creates a new AppError for a service that is temporarily unavailable.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// ExternalServiceError creates a new AppError for an error from an external service.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s service encountered an error. Please try again.", service),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}
