// Package sidestore holds the auxiliary keyed product collections that sit
// beside the cart: the favorites set and the bounded compare list. Both are
// in-memory per session; favorites additionally write through to the
// favorites table.
package sidestore

import (
	"naira-store/internal/domain"

	"github.com/google/uuid"
)

// Favorites is an unordered set of product snapshots keyed by product id.
type Favorites struct {
	products map[uuid.UUID]domain.Product
}

// NewFavorites creates an empty favorites store.
func NewFavorites() *Favorites {
	return &Favorites{products: make(map[uuid.UUID]domain.Product)}
}

// Add inserts the product snapshot. Adding an existing product refreshes the
// snapshot; set semantics never duplicate.
func (f *Favorites) Add(product domain.Product) {
	f.products[product.ID] = product
}

// Remove deletes the entry if present; no-op otherwise.
func (f *Favorites) Remove(productID uuid.UUID) {
	delete(f.products, productID)
}

// Contains reports whether the product is favorited.
func (f *Favorites) Contains(productID uuid.UUID) bool {
	_, ok := f.products[productID]
	return ok
}

// Count returns the number of favorited products.
func (f *Favorites) Count() int {
	return len(f.products)
}

// Products returns the favorited product snapshots, unordered.
func (f *Favorites) Products() []domain.Product {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out
}

// Replace swaps the store's contents, used at sign-in hydration.
func (f *Favorites) Replace(products []domain.Product) {
	f.products = make(map[uuid.UUID]domain.Product, len(products))
	for _, p := range products {
		f.products[p.ID] = p
	}
}

// Clear empties the store, used at sign-out.
func (f *Favorites) Clear() {
	f.products = make(map[uuid.UUID]domain.Product)
}
