package checkout

import (
	"github.com/go-playground/validator/v10"
)

// Payment methods accepted at step 2.
const (
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
)

var validate = validator.New()

// ShippingDetails is the step-1 form. All fields are required; invalid
// submissions block the transition and surface field-level errors.
type ShippingDetails struct {
	FullName     string `json:"full_name" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Phone        string `json:"phone" validate:"required,e164"`
	Email        string `json:"email" validate:"required,email"`
}

// Validate checks the form against its schema.
func (d *ShippingDetails) Validate() error {
	return validate.Struct(d)
}

// PaymentDetails is the step-2 form. Card payments require the card fields;
// the bank-transfer variant instead requires a confirmed receipt URL from
// the receipts bucket before the step can complete.
type PaymentDetails struct {
	Method      string `json:"method" validate:"required,oneof=card bank_transfer"`
	CardHolder  string `json:"card_holder" validate:"required_if=Method card"`
	CardNumber  string `json:"card_number" validate:"required_if=Method card,omitempty,credit_card"`
	ExpiryMonth int    `json:"expiry_month" validate:"required_if=Method card,omitempty,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" validate:"required_if=Method card,omitempty,min=2020"`
	CVV         string `json:"cvv" validate:"required_if=Method card,omitempty,len=3"`
	ReceiptURL  string `json:"receipt_url" validate:"required_if=Method bank_transfer,omitempty,url"`
}

// Validate checks the form against its schema.
func (d *PaymentDetails) Validate() error {
	return validate.Struct(d)
}
