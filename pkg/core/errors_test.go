package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without code",
			err:  NewInvalidRequestError("quantity must be positive"),
			want: "invalid_request_error: quantity must be positive",
		},
		{
			name: "with code",
			err:  NewPaymentError("charge declined", "mtn_timeout"),
			want: "payment_error: charge declined (code: mtn_timeout)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err       *Error
		retryable bool
	}{
		{NewProviderError("gemini", errors.New("deadline exceeded")), true},
		{NewStorageError("connection reset"), true},
		{NewInvalidRequestError("bad item id"), false},
		{NewAuthenticationError("captcha not verified"), false},
		{NewSessionError("remote close"), false},
	}

	for _, tt := range tests {
		if got := tt.err.IsRetryable(); got != tt.retryable {
			t.Errorf("IsRetryable(%s) = %v, want %v", tt.err.Type, got, tt.retryable)
		}
	}
}

func TestAsError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if AsError(nil, "stripe") != nil {
			t.Error("expected nil for nil error")
		}
	})

	t.Run("typed passthrough", func(t *testing.T) {
		typed := NewNotFoundError("no such release")
		wrapped := fmt.Errorf("lookup: %w", typed)
		got := AsError(wrapped, "catalog")
		if got != typed {
			t.Errorf("expected unwrapped typed error, got %v", got)
		}
	})

	t.Run("foreign error becomes provider error", func(t *testing.T) {
		got := AsError(errors.New("boom"), "workos")
		if got.Type != ErrProvider {
			t.Errorf("expected provider error, got %s", got.Type)
		}
		if got.Code != "workos" {
			t.Errorf("expected source code, got %q", got.Code)
		}
	})
}
