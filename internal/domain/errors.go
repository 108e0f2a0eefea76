package domain

import (
	"fmt"
	"time"
)

// APIError is the standardized error payload returned by the HTTP layer.
// The engines themselves never return errors for malformed clinical input;
// unknown symptom keys are ignored and unknown diagnosis pairs yield empty
// results. APIError covers transport-level failures only.
type APIError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for transport-level failure scenarios.
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeRateLimit      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalServer = "INTERNAL_SERVER_ERROR"
)

// NewAPIError creates a new APIError with a UTC timestamp.
func NewAPIError(code, message, details, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}
