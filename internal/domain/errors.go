package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across layers. Wrap them with fmt.Errorf("%w: ...")
// and test with errors.Is.
var (
	// ErrInvalidRequest indicates the caller supplied invalid input.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUpstreamUnavailable indicates the GDS could not serve the request.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamTimeout indicates the GDS did not answer in time.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrUnauthorized indicates the GDS rejected our credentials or token.
	ErrUnauthorized = errors.New("upstream unauthorized")

	// ErrQuotationNotFound indicates the referenced quotation does not exist upstream.
	ErrQuotationNotFound = errors.New("quotation not found")

	// ErrBookingNotFound indicates no booking is stored under the given id.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCacheMiss indicates the search cache holds nothing for the key.
	ErrCacheMiss = errors.New("cache miss")
)

// ValidationError describes a single invalid input field.
// It matches ErrInvalidRequest via errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidRequest.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// ProviderError wraps a failure returned by an upstream supplier.
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

// NewProviderError creates a non-retryable ProviderError.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a ProviderError that callers may retry.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// NewProviderTimeoutError creates a retryable ProviderError wrapping ErrUpstreamTimeout.
func NewProviderTimeoutError(provider string) *ProviderError {
	return NewRetryableProviderError(provider, ErrUpstreamTimeout)
}

// NewProviderUnavailableError creates a retryable ProviderError wrapping ErrUpstreamUnavailable.
func NewProviderUnavailableError(provider string) *ProviderError {
	return NewRetryableProviderError(provider, ErrUpstreamUnavailable)
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsInvalidRequest reports whether err is, or wraps, ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsUpstreamTimeout reports whether err is, or wraps, ErrUpstreamTimeout.
func IsUpstreamTimeout(err error) bool {
	return errors.Is(err, ErrUpstreamTimeout)
}

// IsNotFound reports whether err denotes a missing quotation or booking.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuotationNotFound) || errors.Is(err, ErrBookingNotFound)
}

// IsRetryable reports whether err carries a retryable ProviderError.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
