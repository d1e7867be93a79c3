// Package common defines shared constants and sentinel errors used across
// dochost components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Storage-level errors.
	ErrNotFound      = errors.New("not found")
	ErrInvalidFileID = errors.New("invalid file id")
	ErrStorage       = errors.New("storage error")

	// Auth errors (missing, invalid, malformed or expired token).
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Validation errors.
	ErrValidation    = errors.New("validation error")
	ErrMissingURL    = errors.New("missing document url")
	ErrUnknownStatus = errors.New("unrecognized callback status")

	// Callback processing errors.
	ErrUpstreamFetch  = errors.New("upstream fetch failed")
	ErrEditorReported = errors.New("document server error")
)

// UpstreamFetchError describes a failed download of saved document bytes
// from the editing server. StatusCode is zero for network errors and timeouts.
type UpstreamFetchError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to download document: %s", e.Status)
	}
	return fmt.Sprintf("failed to download document: %v", e.Err)
}

// Unwrap lets errors.Is match both ErrUpstreamFetch and the underlying cause.
func (e *UpstreamFetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstreamFetch}
	}
	return []error{ErrUpstreamFetch, e.Err}
}

// IsAuthError reports whether err belongs to the authentication category.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingToken) || errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenExpired)
}

// IsValidationError reports whether err is caused by a bad request.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidFileID) ||
		errors.Is(err, ErrMissingURL) ||
		errors.Is(err, ErrUnknownStatus)
}
