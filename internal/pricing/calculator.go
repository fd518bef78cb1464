package pricing

import (
	"naira-store/internal/domain"

	"github.com/shopspring/decimal"
)

// Config holds the deployment's pricing constants. VAT is zero in the
// current deployment but the calculator honors any rate.
type Config struct {
	VATRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	BaseShippingCost      decimal.Decimal
}

// DefaultConfig matches the deployed storefront: no VAT, free shipping from
// 100,000 NGN, 3,500 NGN base shipping below the threshold.
func DefaultConfig() Config {
	return Config{
		VATRate:               decimal.Zero,
		FreeShippingThreshold: decimal.NewFromInt(100000),
		BaseShippingCost:      decimal.NewFromInt(3500),
	}
}

// Totals is the derived monetary breakdown of a cart. It is recomputed from
// the lines on every request; nothing here is cached.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	VAT       decimal.Decimal `json:"vat"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// Calculate derives totals from cart lines:
//
//	subtotal = Σ (quantity × unit price)
//	vat      = subtotal × vatRate
//	shipping = 0 when subtotal ≥ threshold, else base cost
//	total    = subtotal + vat + shipping
func Calculate(lines []domain.CartLine, cfg Config) Totals {
	subtotal := decimal.Zero
	itemCount := 0
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
		itemCount += line.Quantity
	}

	vat := subtotal.Mul(cfg.VATRate).Round(2)

	shipping := cfg.BaseShippingCost
	if itemCount == 0 || subtotal.GreaterThanOrEqual(cfg.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal:  subtotal,
		VAT:       vat,
		Shipping:  shipping,
		Total:     subtotal.Add(vat).Add(shipping),
		ItemCount: itemCount,
	}
}
