package soap

import (
	"context"
	"errors"
	"fmt"
)

// TransportError is raised when the remote call itself failed: the network,
// an HTTP status outside 2xx or a SOAP fault. A non-success result code in a
// well formed response is not a TransportError.
type TransportError struct {
	Code       string
	Message    string
	StatusCode int
	// Fault is set when the service answered with a SOAP fault.
	Fault bool
	Err   error
}

func (e *TransportError) Error() string {
	switch {
	case e.Fault:
		return fmt.Sprintf("soap fault [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Err)
	default:
		return fmt.Sprintf("transport error: %s (status: %d)", e.Message, e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether sending the same request again may succeed.
// Faults are answers from the service and are never retried; cancellation
// by the caller is final.
func (e *TransportError) IsRetryable() bool {
	if e.Fault {
		return false
	}
	if errors.Is(e.Err, context.Canceled) {
		return false
	}
	return e.StatusCode == 0 || e.StatusCode >= 500
}

func IsTransportError(err error) (*TransportError, bool) {
	var transportErr *TransportError
	ok := errors.As(err, &transportErr)
	return transportErr, ok
}
