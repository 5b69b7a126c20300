package store

import (
	"context"
	"time"

	stripe "github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
)

// StripeProvider settles USD card payments through Stripe
// PaymentIntents. Prices are carried in whole dollars and converted to
// cents at the boundary.
type StripeProvider struct{}

var _ PaymentProvider = (*StripeProvider)(nil)

// NewStripeProvider sets the account key and returns the provider. The
// stripe client library keys globally.
func NewStripeProvider(apiKey string) (*StripeProvider, error) {
	if apiKey == "" {
		return nil, core.NewAuthenticationError("stripe api key is required")
	}
	stripe.Key = apiKey
	return &StripeProvider{}, nil
}

// Charge creates a PaymentIntent for the payment amount.
func (p *StripeProvider) Charge(ctx context.Context, payment Payment) (*Receipt, error) {
	if payment.Currency != types.CurrencyUSD {
		return nil, core.NewPaymentError("card payments settle USD only", "currency_unsupported")
	}
	if payment.Amount <= 0 {
		return nil, core.NewPaymentError("charge amount must be positive", "amount_invalid")
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(payment.Amount * 100),
		Currency:    stripe.String(string(stripe.CurrencyUSD)),
		Description: stripe.String(payment.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, core.NewProviderError("stripe", err)
	}

	return &Receipt{
		ID:        intent.ID,
		Provider:  "stripe",
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		CreatedAt: time.Now(),
	}, nil
}
