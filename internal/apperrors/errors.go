// Package apperrors defines the error taxonomy shared across the service.
// Handlers at the HTTP boundary map these to status codes; everything else
// just wraps and propagates.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks client-fault input errors (bad extension, empty message).
	ErrValidation = errors.New("validation error")

	// ErrTooLarge marks uploads exceeding the configured size ceiling.
	ErrTooLarge = errors.New("file too large")

	// ErrNotFound marks lookups for unknown document ids.
	ErrNotFound = errors.New("not found")

	// ErrExtraction marks documents that produced no usable text.
	ErrExtraction = errors.New("extraction error")

	// ErrGateway marks failures of external collaborators (embeddings, index, LLM).
	ErrGateway = errors.New("gateway error")
)

// Validationf returns a client-fault error with a human-readable detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// TooLargef returns an oversized-upload error.
func TooLargef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTooLarge, fmt.Sprintf(format, args...))
}

// NotFoundf returns an unknown-id error.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Extractionf returns an extraction failure.
func Extractionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrExtraction, fmt.Sprintf(format, args...))
}

// Gateway wraps an external collaborator failure, keeping the cause chain.
func Gateway(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrGateway, op, err)
}

// IsClientFault reports whether the error should map to a 4xx status.
func IsClientFault(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrTooLarge) ||
		errors.Is(err, ErrNotFound)
}
