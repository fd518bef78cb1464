package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// All monetary output is Nigerian Naira formatted for the en-NG locale:
// two decimal places, grouped thousands.
var ngPrinter = message.NewPrinter(language.MustParse("en-NG"))

// FormatNGN renders an amount as a display string, e.g. "₦23,500.00".
func FormatNGN(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return ngPrinter.Sprintf("₦%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormattedTotals is the display form of a Totals breakdown.
type FormattedTotals struct {
	Subtotal string `json:"subtotal"`
	VAT      string `json:"vat"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

// Format renders every amount in the breakdown for display.
func (t Totals) Format() FormattedTotals {
	return FormattedTotals{
		Subtotal: FormatNGN(t.Subtotal),
		VAT:      FormatNGN(t.VAT),
		Shipping: FormatNGN(t.Shipping),
		Total:    FormatNGN(t.Total),
	}
}
