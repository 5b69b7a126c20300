// Package studio handles session booking requests. The shipped service
// is a stub that simulates confirmation latency; a real scheduler can
// replace it behind the same interface.
package studio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/borex256/century-music-empire/pkg/core"
)

// ServiceType names a bookable studio offering.
type ServiceType string

const (
	ServiceProduction ServiceType = "production"
	ServiceVideo      ServiceType = "video"
	ServicePromotion  ServiceType = "promotion"
)

// BookingRequest is one booking submission.
type BookingRequest struct {
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Service ServiceType `json:"service"`
	Notes   string      `json:"notes,omitempty"`
}

// Validate checks the request fields.
func (r BookingRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return core.NewInvalidRequestErrorWithParam("name is required", "name")
	}
	if strings.TrimSpace(r.Email) == "" {
		return core.NewInvalidRequestErrorWithParam("email is required", "email")
	}
	switch r.Service {
	case ServiceProduction, ServiceVideo, ServicePromotion:
		return nil
	default:
		return core.NewInvalidRequestErrorWithParam("unknown service type", "service")
	}
}

// BookingConfirmation acknowledges an accepted booking.
type BookingConfirmation struct {
	Reference string      `json:"reference"`
	Service   ServiceType `json:"service"`
	CreatedAt time.Time   `json:"created_at"`
}

// BookingService accepts booking submissions. Implementations block
// until the booking resolves or ctx is cancelled.
type BookingService interface {
	Submit(ctx context.Context, req BookingRequest) (*BookingConfirmation, error)
}

// StubBooking confirms every valid request after a processing delay.
type StubBooking struct {
	// Delay approximates backend processing.
	Delay time.Duration
}

var _ BookingService = (*StubBooking)(nil)

// NewStubBooking returns the stub with its default delay.
func NewStubBooking() *StubBooking {
	return &StubBooking{Delay: 1500 * time.Millisecond}
}

func (s *StubBooking) Submit(ctx context.Context, req BookingRequest) (*BookingConfirmation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	select {
	case <-time.After(s.Delay):
	case <-ctx.Done():
		return nil, core.NewSessionError("booking submission cancelled")
	}

	return &BookingConfirmation{
		Reference: fmt.Sprintf("bk-%d", time.Now().UnixNano()),
		Service:   req.Service,
		CreatedAt: time.Now(),
	}, nil
}
