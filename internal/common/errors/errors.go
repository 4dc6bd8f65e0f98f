// Package errors provides standardized error handling for the plan pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Model tier failures. All of them mean "advance to the next tier".
	ErrCodeModelRateLimited   ErrorCode = "MODEL_RATE_LIMITED"
	ErrCodeModelTimeout       ErrorCode = "MODEL_TIMEOUT"
	ErrCodeModelUnavailable   ErrorCode = "MODEL_UNAVAILABLE"
	ErrCodeModelMalformed     ErrorCode = "MODEL_MALFORMED_REPLY"

	// Plan validation failures.
	ErrCodeSchemaInvalid   ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeSemanticInvalid ErrorCode = "SEMANTIC_VALIDATION_FAILED"

	// Request-quality and wiring failures.
	ErrCodeInsufficientInput ErrorCode = "INSUFFICIENT_INPUT"
	ErrCodeConfigInvalid     ErrorCode = "CONFIG_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from an error chain, or "" when the error is
// not a StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsModelFailure reports whether err is one of the tier-client failure kinds.
func IsModelFailure(err error) bool {
	switch CodeOf(err) {
	case ErrCodeModelRateLimited, ErrCodeModelTimeout, ErrCodeModelUnavailable, ErrCodeModelMalformed:
		return true
	}
	return false
}

// ==========================
// 2. Error Constructors
// ==========================

// NewModelRateLimitedError marks a tier as throttled by its provider.
func NewModelRateLimitedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelRateLimited,
		Message:   "Model provider rejected the request with a rate limit",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelTimeoutError marks a tier call that exceeded its per-tier timeout.
func NewModelTimeoutError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelTimeout,
		Message:   "Model call exceeded its timeout",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelUnavailableError marks a tier whose backend could not be reached.
func NewModelUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelUnavailable,
		Message:   "Model backend unavailable",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelMalformedError marks a reply that could not be read as text.
func NewModelMalformedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelMalformed,
		Message:   "Model reply was malformed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaError marks a Stage 1 structural validation failure. Details names
// the offending field path(s).
func NewSchemaError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaInvalid,
		Message:   "Plan failed structural validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSemanticError marks a Stage 2 graph/date invariant violation. Details
// names the violated invariant, e.g. "cycle: task 4 -> task 7 -> task 4".
func NewSemanticError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSemanticInvalid,
		Message:   "Plan failed semantic validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInsufficientInputError rejects a transcript too thin to plan from.
func NewInsufficientInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInsufficientInput,
		Message:   "Not enough information to generate a report",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigError marks broken pipeline wiring. This is the only error that
// can escape Generate, and it means the deployment itself is misconfigured.
func NewConfigError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Pipeline configuration invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
