// Package store implements the merch cart and the payment flows: cart
// totals in both denominations, checkout against a payment provider,
// and the distribution tier checkout.
package store

import (
	"encoding/json"
	"sync"

	"github.com/borex256/century-music-empire/pkg/core/types"
)

// Total is a dual-denominated cart sum. The two amounts accumulate
// independently; there is no conversion between them.
type Total struct {
	UGX int64 `json:"ugx"`
	USD int64 `json:"usd"`
}

// Cart holds a client's pending purchases. Adding an item already in
// the cart increments its quantity; removal deletes the line outright.
// Safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []types.CartItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add inserts the item at quantity 1, or bumps the existing line.
func (c *Cart) Add(item types.StoreItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, types.CartItem{StoreItem: item, Quantity: 1})
}

// Remove deletes the line with the given item id, whatever its
// quantity. Unknown ids are ignored.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []types.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.CartItem(nil), c.items...)
}

// Len returns the number of cart lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Total sums price times quantity per denomination.
func (c *Cart) Total() Total {
	c.mu.Lock()
	defer c.mu.Unlock()
	var t Total
	for _, item := range c.items {
		t.UGX += item.PriceUGX * int64(item.Quantity)
		t.USD += item.PriceUSD * int64(item.Quantity)
	}
	return t
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// MarshalJSON serializes the cart lines for persistence.
func (c *Cart) MarshalJSON() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return json.Marshal(c.items)
}

// UnmarshalJSON restores persisted cart lines. Lines with a quantity
// below one are dropped rather than kept invalid.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []types.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.Quantity >= 1 {
			kept = append(kept, item)
		}
	}
	c.mu.Lock()
	c.items = kept
	c.mu.Unlock()
	return nil
}
