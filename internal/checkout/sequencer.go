// Package checkout implements the three-step checkout wizard:
// Shipping → Payment → Review, with EmptyCart and OrderPlaced terminals.
package checkout

import (
	"errors"
	"fmt"
)

// State is the sequencer's position in the wizard.
type State int

const (
	// StateEmptyCart replaces Shipping whenever checkout begins with an
	// empty cart. Exited only by navigating away to continue shopping.
	StateEmptyCart State = iota
	StateShipping
	StatePayment
	StateReview
	StateOrderPlaced
)

func (s State) String() string {
	switch s {
	case StateEmptyCart:
		return "empty_cart"
	case StateShipping:
		return "shipping"
	case StatePayment:
		return "payment"
	case StateReview:
		return "review"
	case StateOrderPlaced:
		return "order_placed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s State) IsTerminal() bool {
	return s == StateEmptyCart || s == StateOrderPlaced
}

// StepNumber returns the 1-based wizard step, or 0 for terminal states.
func (s State) StepNumber() int {
	switch s {
	case StateShipping:
		return 1
	case StatePayment:
		return 2
	case StateReview:
		return 3
	default:
		return 0
	}
}

var (
	ErrInvalidTransition = errors.New("transition not allowed from current step")
	ErrOrderNotReady     = errors.New("order cannot be placed before review")
)

// Sequencer walks the checkout wizard for one session. It is transient and
// client-scoped: created on entering checkout, destroyed on order placement
// or navigation away, never persisted mid-flow. Backward transitions keep
// all previously entered data.
type Sequencer struct {
	state    State
	shipping *ShippingDetails
	payment  *PaymentDetails
}

// NewSequencer begins checkout. An empty cart starts the sequencer in the
// EmptyCart terminal instead of Shipping.
func NewSequencer(cartEmpty bool) *Sequencer {
	if cartEmpty {
		return &Sequencer{state: StateEmptyCart}
	}
	return &Sequencer{state: StateShipping}
}

// State returns the current wizard state.
func (s *Sequencer) State() State {
	return s.state
}

// Shipping returns the accumulated shipping form, or nil before step 1
// completes. Retained across back-navigation.
func (s *Sequencer) Shipping() *ShippingDetails {
	return s.shipping
}

// Payment returns the accumulated payment form, or nil before step 2
// completes. Retained across back-navigation.
func (s *Sequencer) Payment() *PaymentDetails {
	return s.payment
}

// SubmitShipping validates the step-1 form and advances to Payment. A
// validation failure leaves the sequencer in Shipping and returns the
// field errors.
func (s *Sequencer) SubmitShipping(details ShippingDetails) error {
	if s.state != StateShipping {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, s.state)
	}
	if err := details.Validate(); err != nil {
		return err
	}
	s.shipping = &details
	s.state = StatePayment
	return nil
}

// SubmitPayment validates the step-2 form and advances to Review. A
// validation failure leaves the sequencer in Payment.
func (s *Sequencer) SubmitPayment(details PaymentDetails) error {
	if s.state != StatePayment {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, s.state)
	}
	if err := details.Validate(); err != nil {
		return err
	}
	s.payment = &details
	s.state = StateReview
	return nil
}

// Back moves one step backwards (Payment → Shipping, Review → Payment),
// preserving all entered data. Any other state is rejected.
func (s *Sequencer) Back() error {
	switch s.state {
	case StatePayment:
		s.state = StateShipping
	case StateReview:
		s.state = StatePayment
	default:
		return fmt.Errorf("%w: %s", ErrInvalidTransition, s.state)
	}
	return nil
}

// MarkPlaced records the Review → OrderPlaced transition. It is called by
// the checkout service only after the order insert has committed; a backend
// failure leaves the sequencer in Review.
func (s *Sequencer) MarkPlaced() error {
	if s.state != StateReview {
		return fmt.Errorf("%w: %s", ErrOrderNotReady, s.state)
	}
	s.state = StateOrderPlaced
	return nil
}
