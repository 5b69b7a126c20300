package store

import (
	"context"
	"fmt"
	"time"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
)

// ElitePricePerReleaseUGX is the per-release fee of the elite
// distribution tier. Partnership distribution is free.
const ElitePricePerReleaseUGX int64 = 50000

// Payment is one charge request handed to a provider.
type Payment struct {
	Amount      int64          `json:"amount"`
	Currency    types.Currency `json:"currency"`
	Description string         `json:"description"`

	// Phone is set for mobile money charges only.
	Phone string `json:"phone,omitempty"`
}

// Receipt confirms a settled charge.
type Receipt struct {
	ID        string         `json:"id"`
	Provider  string         `json:"provider"`
	Amount    int64          `json:"amount"`
	Currency  types.Currency `json:"currency"`
	CreatedAt time.Time      `json:"created_at"`
}

// PaymentProvider settles one payment. Implementations block until the
// charge resolves or ctx is cancelled; cancellation abandons the
// charge and returns ctx.Err wrapped as a payment error.
type PaymentProvider interface {
	Charge(ctx context.Context, payment Payment) (*Receipt, error)
}

// Checkout settles a cart through a provider in the selected
// denomination, clearing the cart on success.
func Checkout(ctx context.Context, cart *Cart, currency types.Currency, provider PaymentProvider) (*Receipt, error) {
	if cart.Len() == 0 {
		return nil, core.NewInvalidRequestError("cart is empty")
	}
	total := cart.Total()
	payment := Payment{
		Currency:    currency,
		Description: fmt.Sprintf("Imperial store order, %d lines", cart.Len()),
	}
	switch currency {
	case types.CurrencyUGX:
		payment.Amount = total.UGX
	case types.CurrencyUSD:
		payment.Amount = total.USD
	default:
		return nil, core.NewInvalidRequestErrorWithParam("unsupported currency", string(currency))
	}

	receipt, err := provider.Charge(ctx, payment)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	return receipt, nil
}

// DistributionOrder is a request to distribute releases under one of
// the two tiers.
type DistributionOrder struct {
	Tier     types.DistributionTier `json:"tier"`
	Releases int                    `json:"releases"`
	Phone    string                 `json:"phone,omitempty"`
}

// DistributionCheckout settles a distribution order. The elite tier
// charges per release; partnership is free and returns a zero-amount
// receipt without touching the provider.
func DistributionCheckout(ctx context.Context, order DistributionOrder, provider PaymentProvider) (*Receipt, error) {
	if order.Releases < 1 {
		return nil, core.NewInvalidRequestErrorWithParam("at least one release is required", "releases")
	}
	switch order.Tier {
	case types.TierPartnership:
		return &Receipt{
			ID:        fmt.Sprintf("dist-partnership-%d", time.Now().UnixNano()),
			Provider:  "label",
			Amount:    0,
			Currency:  types.CurrencyUGX,
			CreatedAt: time.Now(),
		}, nil
	case types.TierElite:
		return provider.Charge(ctx, Payment{
			Amount:      ElitePricePerReleaseUGX * int64(order.Releases),
			Currency:    types.CurrencyUGX,
			Description: fmt.Sprintf("Elite protocol distribution, %d release(s)", order.Releases),
			Phone:       order.Phone,
		})
	default:
		return nil, core.NewInvalidRequestErrorWithParam("unknown distribution tier", string(order.Tier))
	}
}
