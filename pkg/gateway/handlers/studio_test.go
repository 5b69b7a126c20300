package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/borex256/century-music-empire/pkg/label/studio"
)

func newStudioHandler() StudioHandler {
	bookings := studio.NewStubBooking()
	bookings.Delay = 0
	return StudioHandler{Bookings: bookings, MaxBodyBytes: 1 << 20}
}

func TestBookReturnsConfirmation(t *testing.T) {
	h := newStudioHandler()

	body := `{"name":"KIM CUG","email":"kim@century.example","service":"production","notes":"late night only"}`
	rr := httptest.NewRecorder()
	h.Book(rr, httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}

	var conf studio.BookingConfirmation
	if err := json.Unmarshal(rr.Body.Bytes(), &conf); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if conf.Reference == "" {
		t.Fatal("confirmation reference missing")
	}
	if conf.Service != studio.ServiceProduction {
		t.Fatalf("service=%q", conf.Service)
	}
}

func TestBookRejectsUnknownService(t *testing.T) {
	h := newStudioHandler()

	body := `{"name":"KIM CUG","email":"kim@century.example","service":"karaoke"}`
	rr := httptest.NewRecorder()
	h.Book(rr, httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestBookRejectsMissingContact(t *testing.T) {
	h := newStudioHandler()

	body := `{"name":"","email":"","service":"video"}`
	rr := httptest.NewRecorder()
	h.Book(rr, httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestBookBoundsProviderCall(t *testing.T) {
	var hadDeadline bool
	h := StudioHandler{
		Bookings: deadlineBookings{observe: func(ctx context.Context) {
			_, hadDeadline = ctx.Deadline()
		}},
		MaxBodyBytes: 1 << 20,
		Timeout:      50 * time.Millisecond,
	}

	body := `{"name":"KIM CUG","email":"kim@century.example","service":"production"}`
	rr := httptest.NewRecorder()
	h.Book(rr, httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	if !hadDeadline {
		t.Fatal("booking context carries no deadline")
	}
}

type deadlineBookings struct {
	observe func(ctx context.Context)
}

func (b deadlineBookings) Submit(ctx context.Context, req studio.BookingRequest) (*studio.BookingConfirmation, error) {
	if b.observe != nil {
		b.observe(ctx)
	}
	return &studio.BookingConfirmation{Reference: "bk-test", Service: req.Service}, nil
}
