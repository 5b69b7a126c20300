package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
)

// Network is a mobile money carrier.
type Network string

const (
	NetworkMTN    Network = "MTN"
	NetworkAirtel Network = "AIRTEL"
)

// MobileMoney is a simulated carrier integration. It accepts UGX
// charges against a subscriber phone number and resolves after a
// settlement delay, honoring cancellation. No real carrier is called.
type MobileMoney struct {
	network Network

	// Latency approximates the carrier confirmation round trip.
	Latency time.Duration
}

var _ PaymentProvider = (*MobileMoney)(nil)

// NewMobileMoney builds a provider for one carrier.
func NewMobileMoney(network Network) (*MobileMoney, error) {
	switch network {
	case NetworkMTN, NetworkAirtel:
		return &MobileMoney{network: network, Latency: 3 * time.Second}, nil
	default:
		return nil, core.NewInvalidRequestErrorWithParam("unknown mobile money network", string(network))
	}
}

// Charge validates the request, waits out the settlement delay, and
// issues a receipt. Context cancellation abandons the charge.
func (m *MobileMoney) Charge(ctx context.Context, payment Payment) (*Receipt, error) {
	if payment.Currency != types.CurrencyUGX {
		return nil, core.NewPaymentError("mobile money settles UGX only", "currency_unsupported")
	}
	if payment.Amount <= 0 {
		return nil, core.NewPaymentError("charge amount must be positive", "amount_invalid")
	}
	if !validSubscriberNumber(payment.Phone) {
		return nil, core.NewPaymentError("subscriber phone number is invalid", "phone_invalid")
	}

	select {
	case <-time.After(m.Latency):
	case <-ctx.Done():
		return nil, core.NewPaymentError(fmt.Sprintf("charge abandoned: %v", ctx.Err()), "cancelled")
	}

	return &Receipt{
		ID:        fmt.Sprintf("%s-%d", strings.ToLower(string(m.network)), time.Now().UnixNano()),
		Provider:  string(m.network),
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		CreatedAt: time.Now(),
	}, nil
}

// validSubscriberNumber accepts local (07XXXXXXXX) and international
// (+2567XXXXXXXX) Ugandan subscriber formats.
func validSubscriberNumber(phone string) bool {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+256") {
		phone = "0" + phone[4:]
	}
	if len(phone) != 10 || !strings.HasPrefix(phone, "07") {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
