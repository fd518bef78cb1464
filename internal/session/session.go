// Package session replaces the original ambient cart/favorites/compare
// providers with explicit per-user store objects: one Session per signed-in
// user, created at sign-in and torn down at sign-out, injected into the
// services that need it.
package session

import (
	"sync"

	"naira-store/internal/cart"
	"naira-store/internal/checkout"
	"naira-store/internal/sidestore"

	"github.com/google/uuid"
)

// Session bundles the in-memory stores owned by one signed-in user: the
// cart line-item store, the favorites and compare side-stores, and the
// transient checkout sequencer.
//
// The original ran all mutations on a single browser UI thread. Here HTTP
// handlers stand in for interaction handlers, so the session carries a
// mutex and all store access goes through Do.
type Session struct {
	UserID uuid.UUID

	mu        sync.Mutex
	Cart      *cart.Store
	Favorites *sidestore.Favorites
	Compare   *sidestore.Compare
	checkout  *checkout.Sequencer
}

func newSession(userID uuid.UUID, compareLimit int) *Session {
	return &Session{
		UserID:    userID,
		Cart:      cart.NewStore(),
		Favorites: sidestore.NewFavorites(),
		Compare:   sidestore.NewCompare(compareLimit),
	}
}

// Do runs fn with the session's stores held exclusively. Mutations are
// synchronous with respect to the caller, matching the original model where
// store updates happen inline in the interaction handler.
func (s *Session) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// BeginCheckout creates (or returns) the checkout sequencer. Entering with
// an empty cart yields the EmptyCart terminal instead of Shipping. Must be
// called inside Do.
func (s *Session) BeginCheckout() *checkout.Sequencer {
	if s.checkout == nil || s.checkout.State().IsTerminal() {
		s.checkout = checkout.NewSequencer(s.Cart.IsEmpty())
	}
	return s.checkout
}

// Checkout returns the in-flight sequencer, or nil when checkout has not
// begun. Must be called inside Do.
func (s *Session) Checkout() *checkout.Sequencer {
	return s.checkout
}

// AbandonCheckout drops the in-flight sequencer, modeling navigation away
// mid-flow. Already-dispatched writes are not cancelled. Must be called
// inside Do.
func (s *Session) AbandonCheckout() {
	s.checkout = nil
}
