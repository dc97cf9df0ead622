// Package errors defines the failure taxonomy carried by response envelopes.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// TransportError represents a network, abort or body-decoding failure while
// talking to a provider, or a non-success status reported by one.
type TransportError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a transport failure.
func NewTransportError(err error) *TransportError {
	msg := "transport failure"
	if err != nil {
		msg = err.Error()
	}
	return &TransportError{Message: msg, Err: err}
}

// NewStatusError creates a transport failure for a provider that answered
// with a non-success status code.
func NewStatusError(statusCode int, message string) *TransportError {
	if message == "" {
		message = "unexpected status"
	}
	return &TransportError{Message: message, StatusCode: statusCode}
}

// IsTransportError checks if err is a TransportError (even when wrapped).
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return stdErrors.As(err, &transportErr)
}
