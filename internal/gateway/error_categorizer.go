package gateway

import (
	"context"
	"errors"
	"net"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/DanielPopoola/payline-gateway/internal/infrastructure/soap"
)

// ErrorCategory tells callers how to react to an error.
type ErrorCategory string

const (
	// CategoryConfiguration is a deployment problem: fix the settings.
	CategoryConfiguration ErrorCategory = "CONFIGURATION"
	// CategoryValidation means the call input was incomplete or invalid.
	CategoryValidation ErrorCategory = "VALIDATION"
	// CategoryTransport covers network failures, HTTP errors and SOAP faults.
	CategoryTransport ErrorCategory = "TRANSPORT"
	// CategoryInterpretation means an expected response field was absent or
	// malformed.
	CategoryInterpretation ErrorCategory = "INTERPRETATION"
	CategoryUnknown        ErrorCategory = "UNKNOWN"
)

// CategorizeError determines the error category for retry and reporting
// purposes.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if _, ok := soap.IsTransportError(err); ok {
		return CategoryTransport
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransport
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domain.ErrCodeMissingMerchantID,
			domain.ErrCodeMissingAccessKey,
			domain.ErrCodeUnsupportedOperation:
			return CategoryConfiguration
		case domain.ErrCodeMissingResponseField,
			domain.ErrCodeMalformedResponseField:
			return CategoryInterpretation
		default:
			return CategoryValidation
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return CategoryTransport
	}

	return CategoryUnknown
}

// IsRetryable returns true only for transient transport failures. Faults,
// validation and configuration errors are final.
func IsRetryable(err error) bool {
	if transportErr, ok := soap.IsTransportError(err); ok {
		return transportErr.IsRetryable()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
