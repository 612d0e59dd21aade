package models

import (
	"errors"
	"fmt"
)

// Error codes used in API responses and internal error handling.
const (
	ErrCodeLaunch     = "LAUNCH_FAILED"
	ErrCodeNavigation = "NAVIGATION_FAILED"
	ErrCodeExtraction = "EXTRACTION_FAILED"

	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// Detail returns the human-readable message with the underlying cause
// attached, without the error code prefix.
func (e *ScrapeError) Detail() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// ErrorCode returns the code of the first ScrapeError in err's chain.
// Returns an empty string for nil and ErrCodeInternal for foreign errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries a ScrapeError with the given code.
func IsCode(err error, code string) bool {
	var se *ScrapeError
	return errors.As(err, &se) && se.Code == code
}

// AsScrapeError returns err unchanged when it already carries a ScrapeError,
// otherwise it wraps it with the given code and message.
func AsScrapeError(err error, code, message string) *ScrapeError {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se
	}
	return NewScrapeError(code, message, err)
}

// ToResponse converts an internal error to the API-facing error body.
func (e *ScrapeError) ToResponse() *ErrorResponse {
	return &ErrorResponse{
		Error: "Failed to scrape page: " + e.Detail(),
		Code:  e.Code,
	}
}
