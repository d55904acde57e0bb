// Package domain provides the shopping cart value types and the pure
// transitions applied to them.
package domain

import (
	"errors"
	"fmt"
)

// ErrItemNotFound indicates a cart item with the requested ID does not exist.
var ErrItemNotFound = errors.New("cart item not found")

// Product is a catalog entry that can be added to the cart.
type Product struct {
	ID          string  `json:"id" toml:"id" yaml:"id"`
	Price       float64 `json:"price" toml:"price" yaml:"price"`
	Title       string  `json:"title" toml:"title" yaml:"title"`
	Description string  `json:"description" toml:"description" yaml:"description"`
}

// CartItem is one product's aggregated quantity and price in the cart.
type CartItem struct {
	ID         string  `json:"id"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
	Name       string  `json:"name"`
}

// CartState is the full cart document sent to the remote endpoint.
type CartState struct {
	Items         []CartItem `json:"items"`
	TotalQuantity int        `json:"totalQuantity"`
}

// NewCartState returns an empty cart. Items is non-nil so it serializes as [].
func NewCartState() CartState {
	return CartState{Items: []CartItem{}}
}

// Clone returns a deep copy of the state.
func (s CartState) Clone() CartState {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return CartState{Items: items, TotalQuantity: s.TotalQuantity}
}

// Find returns the item with the given ID.
func (s CartState) Find(id string) (CartItem, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Items[i], true
	}
	return CartItem{}, false
}

// TotalAmount is the sum of all item totals.
func (s CartState) TotalAmount() float64 {
	var total float64
	for _, item := range s.Items {
		total += item.TotalPrice
	}
	return total
}

// Validate checks the cart invariants: positive quantities, totals derived
// from unit price, unique IDs and a matching TotalQuantity.
func (s CartState) Validate() error {
	seen := make(map[string]bool, len(s.Items))
	sum := 0
	for _, item := range s.Items {
		if item.ID == "" {
			return errors.New("cart item has empty id")
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate cart item %q", item.ID)
		}
		seen[item.ID] = true
		if item.Quantity < 1 {
			return fmt.Errorf("cart item %q has quantity %d", item.ID, item.Quantity)
		}
		if item.TotalPrice != item.Price*float64(item.Quantity) {
			return fmt.Errorf("cart item %q total %v does not match %v x %d", item.ID, item.TotalPrice, item.Price, item.Quantity)
		}
		sum += item.Quantity
	}
	if sum != s.TotalQuantity {
		return fmt.Errorf("total quantity %d does not match item sum %d", s.TotalQuantity, sum)
	}
	return nil
}

func (s CartState) indexOf(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// AddItem returns a new state with one unit of product added. An existing
// line is incremented; otherwise a new line is appended.
func AddItem(state CartState, product Product) CartState {
	next := state.Clone()
	next.TotalQuantity++
	if i := next.indexOf(product.ID); i >= 0 {
		item := &next.Items[i]
		item.Quantity++
		item.TotalPrice = item.Price * float64(item.Quantity)
		return next
	}
	next.Items = append(next.Items, CartItem{
		ID:         product.ID,
		Price:      product.Price,
		Quantity:   1,
		TotalPrice: product.Price,
		Name:       product.Title,
	})
	return next
}

// RemoveItem returns a new state with one unit of id removed. A line whose
// quantity is one or less is dropped. The input is never modified.
func RemoveItem(state CartState, id string) (CartState, error) {
	i := state.indexOf(id)
	if i < 0 {
		return state, fmt.Errorf("remove %q: %w", id, ErrItemNotFound)
	}
	next := state.Clone()
	item := &next.Items[i]
	if item.Quantity <= 1 {
		next.TotalQuantity -= max(item.Quantity, 0)
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
		return next, nil
	}
	next.TotalQuantity--
	item.Quantity--
	item.TotalPrice = item.Price * float64(item.Quantity)
	return next, nil
}
