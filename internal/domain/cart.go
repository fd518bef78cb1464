package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a (product, quantity) pair in the cart. There is at most one
// line per product id; adding an existing product merges quantities.
type CartLine struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// ProductID returns the identifier of the line's product.
func (l *CartLine) ProductID() uuid.UUID {
	return l.Product.ID
}

// LineTotal returns quantity × unit price.
func (l *CartLine) LineTotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
