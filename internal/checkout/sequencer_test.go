package checkout

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping() ShippingDetails {
	return ShippingDetails{
		FullName:     "Ada Obi",
		AddressLine1: "12 Marina Road",
		City:         "Lagos",
		State:        "Lagos",
		PostalCode:   "101241",
		Phone:        "+2348012345678",
		Email:        "ada@example.com",
	}
}

func validCardPayment() PaymentDetails {
	return PaymentDetails{
		Method:      PaymentMethodCard,
		CardHolder:  "Ada Obi",
		CardNumber:  "4242424242424242",
		ExpiryMonth: 12,
		ExpiryYear:  2030,
		CVV:         "123",
	}
}

func TestEmptyCartEntersTerminalState(t *testing.T) {
	seq := NewSequencer(true)

	assert.Equal(t, StateEmptyCart, seq.State())
	assert.True(t, seq.State().IsTerminal())
	assert.Error(t, seq.SubmitShipping(validShipping()))
}

func TestInvalidShippingBlocksTransition(t *testing.T) {
	seq := NewSequencer(false)

	incomplete := validShipping()
	incomplete.Email = "not-an-email"

	err := seq.SubmitShipping(incomplete)
	require.Error(t, err)
	assert.Equal(t, StateShipping, seq.State())
	assert.Equal(t, 1, seq.State().StepNumber())
	assert.Nil(t, seq.Shipping())
}

func TestValidShippingAdvancesToPayment(t *testing.T) {
	seq := NewSequencer(false)

	require.NoError(t, seq.SubmitShipping(validShipping()))
	assert.Equal(t, StatePayment, seq.State())
	assert.Equal(t, 2, seq.State().StepNumber())
}

func TestCardPaymentRequiresCardFields(t *testing.T) {
	seq := NewSequencer(false)
	require.NoError(t, seq.SubmitShipping(validShipping()))

	missing := PaymentDetails{Method: PaymentMethodCard}
	err := seq.SubmitPayment(missing)
	require.Error(t, err)
	assert.Equal(t, StatePayment, seq.State())
}

func TestBankTransferRequiresReceiptURL(t *testing.T) {
	seq := NewSequencer(false)
	require.NoError(t, seq.SubmitShipping(validShipping()))

	// place-order stays unreachable until the upload confirms a stored URL
	noReceipt := PaymentDetails{Method: PaymentMethodBankTransfer}
	require.Error(t, seq.SubmitPayment(noReceipt))
	assert.Equal(t, StatePayment, seq.State())

	withReceipt := PaymentDetails{
		Method:     PaymentMethodBankTransfer,
		ReceiptURL: "https://storage.example.com/receipts/abc.png",
	}
	require.NoError(t, seq.SubmitPayment(withReceipt))
	assert.Equal(t, StateReview, seq.State())
}

func TestBackwardTransitionsPreserveData(t *testing.T) {
	seq := NewSequencer(false)
	shipping := validShipping()
	payment := validCardPayment()

	require.NoError(t, seq.SubmitShipping(shipping))
	require.NoError(t, seq.SubmitPayment(payment))

	require.NoError(t, seq.Back())
	assert.Equal(t, StatePayment, seq.State())
	require.NoError(t, seq.Back())
	assert.Equal(t, StateShipping, seq.State())

	// entered data survives back-navigation
	require.NotNil(t, seq.Shipping())
	assert.Equal(t, shipping.FullName, seq.Shipping().FullName)
	require.NotNil(t, seq.Payment())
	assert.Equal(t, payment.CardNumber, seq.Payment().CardNumber)
}

func TestBackFromShippingIsRejected(t *testing.T) {
	seq := NewSequencer(false)
	assert.ErrorIs(t, seq.Back(), ErrInvalidTransition)
}

func TestMarkPlacedOnlyFromReview(t *testing.T) {
	seq := NewSequencer(false)
	assert.ErrorIs(t, seq.MarkPlaced(), ErrOrderNotReady)

	require.NoError(t, seq.SubmitShipping(validShipping()))
	assert.ErrorIs(t, seq.MarkPlaced(), ErrOrderNotReady)

	require.NoError(t, seq.SubmitPayment(validCardPayment()))
	require.NoError(t, seq.MarkPlaced())
	assert.Equal(t, StateOrderPlaced, seq.State())
	assert.True(t, seq.State().IsTerminal())
}

func TestProperty_MissingRequiredShippingFieldNeverAdvances(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("dropping any required shipping field keeps the sequencer at step 1", prop.ForAll(
		func(missing int) bool {
			seq := NewSequencer(false)
			d := validShipping()

			switch missing {
			case 0:
				d.FullName = ""
			case 1:
				d.AddressLine1 = ""
			case 2:
				d.City = ""
			case 3:
				d.State = ""
			case 4:
				d.PostalCode = ""
			case 5:
				d.Phone = ""
			case 6:
				d.Email = ""
			}

			err := seq.SubmitShipping(d)
			return err != nil && seq.State() == StateShipping
		},
		gen.IntRange(0, 6),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
