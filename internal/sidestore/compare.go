package sidestore

import (
	"errors"

	"naira-store/internal/domain"

	"github.com/google/uuid"
)

// DefaultCompareLimit is the deployed compare-list capacity.
const DefaultCompareLimit = 3

// ErrCompareLimitReached signals that the compare list is full. The add is
// rejected outright; nothing is evicted.
var ErrCompareLimitReached = errors.New("compare list limit reached")

// Compare is an ordered, bounded list of product snapshots.
type Compare struct {
	limit    int
	products []domain.Product
}

// NewCompare creates an empty compare store with the given capacity. A
// non-positive limit falls back to the default.
func NewCompare(limit int) *Compare {
	if limit <= 0 {
		limit = DefaultCompareLimit
	}
	return &Compare{limit: limit}
}

// Add appends the product. Adding a product already on the list is a no-op;
// adding beyond capacity returns ErrCompareLimitReached.
func (c *Compare) Add(product domain.Product) error {
	if c.Contains(product.ID) {
		return nil
	}
	if len(c.products) >= c.limit {
		return ErrCompareLimitReached
	}
	c.products = append(c.products, product)
	return nil
}

// Remove deletes the entry if present, preserving order of the rest.
func (c *Compare) Remove(productID uuid.UUID) {
	for i, p := range c.products {
		if p.ID == productID {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return
		}
	}
}

// Contains reports whether the product is on the list.
func (c *Compare) Contains(productID uuid.UUID) bool {
	for _, p := range c.products {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Count returns the number of products on the list.
func (c *Compare) Count() int {
	return len(c.products)
}

// Limit returns the capacity.
func (c *Compare) Limit() int {
	return c.limit
}

// Products returns the compared products in insertion order.
func (c *Compare) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Clear empties the list, used at sign-out.
func (c *Compare) Clear() {
	c.products = nil
}
