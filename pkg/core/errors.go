package core

import (
	"errors"
	"fmt"
)

// Error is the typed error carried across platform boundaries.
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Param   string    `json:"param,omitempty"`
	Code    string    `json:"code,omitempty"`

	// RequestID is attached by the gateway before the error leaves the
	// process.
	RequestID string `json:"request_id,omitempty"`

	// RetryAfter, in seconds, accompanies rate limit errors.
	RetryAfter *int `json:"retry_after,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code: %s)", e.Type, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorType categorizes errors.
type ErrorType string

const (
	ErrInvalidRequest ErrorType = "invalid_request_error"
	ErrAuthentication ErrorType = "authentication_error"
	ErrNotFound       ErrorType = "not_found_error"
	ErrPayment        ErrorType = "payment_error"
	ErrSession        ErrorType = "session_error"
	ErrStorage        ErrorType = "storage_error"
	ErrProvider       ErrorType = "provider_error"
	ErrRateLimit      ErrorType = "rate_limit_error"
)

// NewInvalidRequestError creates an invalid request error.
func NewInvalidRequestError(message string) *Error {
	return &Error{Type: ErrInvalidRequest, Message: message}
}

// NewInvalidRequestErrorWithParam creates an invalid request error with a parameter.
func NewInvalidRequestErrorWithParam(message, param string) *Error {
	return &Error{Type: ErrInvalidRequest, Message: message, Param: param}
}

// NewAuthenticationError creates an authentication error.
func NewAuthenticationError(message string) *Error {
	return &Error{Type: ErrAuthentication, Message: message}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(message string) *Error {
	return &Error{Type: ErrNotFound, Message: message}
}

// NewPaymentError creates a payment error with a provider-assigned code.
func NewPaymentError(message, code string) *Error {
	return &Error{Type: ErrPayment, Message: message, Code: code}
}

// NewSessionError creates a live session error.
func NewSessionError(message string) *Error {
	return &Error{Type: ErrSession, Message: message}
}

// NewStorageError creates a storage error.
func NewStorageError(message string) *Error {
	return &Error{Type: ErrStorage, Message: message}
}

// NewProviderError creates an error originating in an external collaborator.
func NewProviderError(provider string, underlying error) *Error {
	return &Error{
		Type:    ErrProvider,
		Message: fmt.Sprintf("%s: %v", provider, underlying),
		Code:    provider,
	}
}

// IsRetryable reports whether retrying the operation could succeed.
// Nothing in the platform retries automatically; callers may.
func (e *Error) IsRetryable() bool {
	switch e.Type {
	case ErrProvider, ErrStorage:
		return true
	default:
		return false
	}
}

// AsError unwraps err into a *core.Error, or wraps it as a provider error
// attributed to source.
func AsError(err error, source string) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return NewProviderError(source, err)
}
