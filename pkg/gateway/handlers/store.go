package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
	"github.com/borex256/century-music-empire/pkg/label/catalog"
	"github.com/borex256/century-music-empire/pkg/label/store"
)

// ProviderSelector picks a payment provider for a settlement
// denomination. Tests substitute a fake; production wiring routes UGX
// to mobile money and USD to Stripe.
type ProviderSelector interface {
	Select(currency types.Currency, network string) (store.PaymentProvider, error)
}

// DefaultProviders is the production provider wiring.
type DefaultProviders struct {
	// Stripe settles USD. Nil disables card checkout.
	Stripe store.PaymentProvider

	// MobileMoneyLatency overrides the simulated carrier delay.
	MobileMoneyLatency time.Duration
}

func (p DefaultProviders) Select(currency types.Currency, network string) (store.PaymentProvider, error) {
	switch currency {
	case types.CurrencyUGX:
		mm, err := store.NewMobileMoney(store.Network(strings.ToUpper(strings.TrimSpace(network))))
		if err != nil {
			return nil, err
		}
		if p.MobileMoneyLatency > 0 {
			mm.Latency = p.MobileMoneyLatency
		}
		return mm, nil
	case types.CurrencyUSD:
		if p.Stripe == nil {
			return nil, core.NewPaymentError("card payments are not configured", "provider_unavailable")
		}
		return p.Stripe, nil
	default:
		return nil, core.NewInvalidRequestErrorWithParam("unsupported currency", string(currency))
	}
}

// StoreHandler serves store inventory and settles checkouts. The cart
// itself lives on the client; checkout requests carry item IDs and
// quantities, and prices are always resolved server-side.
type StoreHandler struct {
	Catalog      catalog.Store
	Providers    ProviderSelector
	MaxBodyBytes int64
	Timeout      time.Duration
}

func (h StoreHandler) Items(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.Items(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h StoreHandler) Item(w http.ResponseWriter, r *http.Request) {
	item, err := h.Catalog.Item(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type checkoutLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type checkoutRequest struct {
	Items    []checkoutLine `json:"items"`
	Currency types.Currency `json:"currency"`
	Phone    string         `json:"phone,omitempty"`
	Network  string         `json:"network,omitempty"`
}

func (h StoreHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, h.MaxBodyBytes, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := boundedContext(r, h.Timeout)
	defer cancel()

	cart, err := h.buildCart(ctx, req.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}

	provider, err := h.Providers.Select(req.Currency, req.Network)
	if err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := store.Checkout(ctx, cart, req.Currency, withPhone(provider, req.Phone))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

type distributionRequest struct {
	Tier     types.DistributionTier `json:"tier"`
	Releases int                    `json:"releases"`
	Phone    string                 `json:"phone,omitempty"`
	Network  string                 `json:"network,omitempty"`
}

func (h StoreHandler) DistributionCheckout(w http.ResponseWriter, r *http.Request) {
	var req distributionRequest
	if err := decodeJSON(r, h.MaxBodyBytes, &req); err != nil {
		writeError(w, r, err)
		return
	}

	// Partnership never charges; only resolve a provider when money moves.
	var provider store.PaymentProvider
	if req.Tier == types.TierElite {
		p, err := h.Providers.Select(types.CurrencyUGX, req.Network)
		if err != nil {
			writeError(w, r, err)
			return
		}
		provider = p
	}

	ctx, cancel := boundedContext(r, h.Timeout)
	defer cancel()

	receipt, err := store.DistributionCheckout(ctx, store.DistributionOrder{
		Tier:     req.Tier,
		Releases: req.Releases,
		Phone:    req.Phone,
	}, provider)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// buildCart resolves client line items against the catalog so prices
// can never be dictated by the request.
func (h StoreHandler) buildCart(ctx context.Context, lines []checkoutLine) (*store.Cart, error) {
	cart := store.NewCart()
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, core.NewInvalidRequestErrorWithParam("quantity must be at least 1", line.ID)
		}
		item, err := h.Catalog.Item(ctx, line.ID)
		if err != nil {
			return nil, err
		}
		for i := 0; i < line.Quantity; i++ {
			cart.Add(*item)
		}
	}
	return cart, nil
}

type phoneProvider struct {
	inner store.PaymentProvider
	phone string
}

func (p phoneProvider) Charge(ctx context.Context, payment store.Payment) (*store.Receipt, error) {
	if payment.Phone == "" {
		payment.Phone = p.phone
	}
	return p.inner.Charge(ctx, payment)
}

func withPhone(provider store.PaymentProvider, phone string) store.PaymentProvider {
	if strings.TrimSpace(phone) == "" {
		return provider
	}
	return phoneProvider{inner: provider, phone: strings.TrimSpace(phone)}
}
