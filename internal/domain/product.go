package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog. The cart/checkout core treats
// products as read-only snapshots; only the admin surface mutates them.
type Product struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Description      string          `json:"description" db:"description"`
	CategoryID       uuid.UUID       `json:"category_id" db:"category_id"`
	ImageURLs        []string        `json:"image_urls" db:"image_urls"`
	UnitPrice        decimal.Decimal `json:"unit_price" db:"unit_price"`
	OriginalPrice    decimal.Decimal `json:"original_price" db:"original_price"`
	DiscountPercent  int             `json:"discount_percent" db:"discount_percent"`
	MinOrderQuantity int             `json:"min_order_quantity" db:"min_order_quantity"`
	Rating           float64         `json:"rating" db:"rating"`
	ReviewCount      int             `json:"review_count" db:"review_count"`
	InStock          bool            `json:"in_stock" db:"in_stock"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// MinQuantity returns the smallest quantity a cart line for this product may
// carry: the minimum order quantity, never less than 1.
func (p *Product) MinQuantity() int {
	if p.MinOrderQuantity > 1 {
		return p.MinOrderQuantity
	}
	return 1
}

// Category represents a product category
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
