package handlers

import (
	"net/http"
	"time"

	"github.com/borex256/century-music-empire/pkg/label/studio"
)

// StudioHandler serves session booking requests.
type StudioHandler struct {
	Bookings     studio.BookingService
	MaxBodyBytes int64
	Timeout      time.Duration
}

type bookingRequest struct {
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	Service studio.ServiceType `json:"service"`
	Notes   string             `json:"notes,omitempty"`
}

func (h StudioHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(r, h.MaxBodyBytes, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := boundedContext(r, h.Timeout)
	defer cancel()

	confirmation, err := h.Bookings.Submit(ctx, studio.BookingRequest{
		Name:    req.Name,
		Email:   req.Email,
		Service: req.Service,
		Notes:   req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, confirmation)
}
