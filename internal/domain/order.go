package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a placed order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsTerminal reports whether the order can no longer change state.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

// Order is the durable snapshot created at place-order time: cart lines,
// shipping details, payment reference and computed totals. After the insert
// commits, the database copy is the source of truth.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	IdempotencyKey  string          `json:"idempotency_key" db:"idempotency_key"`
	Status          OrderStatus     `json:"status" db:"status"`
	Items           []OrderItem     `json:"items"`
	ShippingName    string          `json:"shipping_name" db:"shipping_name"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address"`
	ShippingCity    string          `json:"shipping_city" db:"shipping_city"`
	ShippingState   string          `json:"shipping_state" db:"shipping_state"`
	ShippingPostal  string          `json:"shipping_postal" db:"shipping_postal"`
	ShippingPhone   string          `json:"shipping_phone" db:"shipping_phone"`
	ShippingEmail   string          `json:"shipping_email" db:"shipping_email"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	ReceiptURL      string          `json:"receipt_url" db:"receipt_url"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
	VAT             decimal.Decimal `json:"vat" db:"vat"`
	Shipping        decimal.Decimal `json:"shipping" db:"shipping"`
	Total           decimal.Decimal `json:"total" db:"total"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderItem is one snapshotted cart line inside an order. Name and unit price
// are copied from the product at placement time so later catalog edits do not
// rewrite order history.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	OrderID   uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	Quantity  int             `json:"quantity" db:"quantity"`
}
