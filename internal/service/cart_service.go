package service

import (
	"context"
	"fmt"

	"naira-store/internal/domain"
	"naira-store/internal/pricing"
	"naira-store/internal/repository"
	"naira-store/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService mutates the session's line-item store and writes each change
// through to the cart_items table. The local mutation is synchronous and
// always succeeds; the backend write is dispatched asynchronously and its
// outcome is observable on the returned channel, so callers can await it or
// detach. Failed writes are reported, never retried automatically.
type CartService interface {
	AddItem(ctx context.Context, sess *session.Session, productID uuid.UUID, quantity int) (domain.CartLine, <-chan error, error)
	SetQuantity(ctx context.Context, sess *session.Session, productID uuid.UUID, quantity int) (domain.CartLine, <-chan error, error)
	RemoveItem(ctx context.Context, sess *session.Session, productID uuid.UUID) <-chan error
	Lines(sess *session.Session) []domain.CartLine
	Totals(sess *session.Session) pricing.Totals
}

type cartService struct {
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	pricingCfg  pricing.Config
	logger      *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	pricingCfg pricing.Config,
	logger *zap.Logger,
) CartService {
	return &cartService{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		pricingCfg:  pricingCfg,
		logger:      logger,
	}
}

// AddItem looks the product up, merges it into the session cart and writes
// through. The product lookup is the only failure that aborts; the local
// add itself cannot fail.
func (s *cartService) AddItem(ctx context.Context, sess *session.Session, productID uuid.UUID, quantity int) (domain.CartLine, <-chan error, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return domain.CartLine{}, nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	var line domain.CartLine
	sess.Do(func() {
		line = sess.Cart.AddItem(*product, quantity)
	})

	return line, s.persistLine(sess.UserID, line), nil
}

// SetQuantity updates an existing line, clamping below the product minimum,
// and writes through. Unknown lines are rejected.
func (s *cartService) SetQuantity(ctx context.Context, sess *session.Session, productID uuid.UUID, quantity int) (domain.CartLine, <-chan error, error) {
	var (
		line domain.CartLine
		ok   bool
	)
	sess.Do(func() {
		if _, ok = sess.Cart.Get(productID); ok {
			sess.Cart.SetQuantity(productID, quantity)
			line, _ = sess.Cart.Get(productID)
		}
	})
	if !ok {
		return domain.CartLine{}, nil, repository.ErrProductNotFound
	}

	return line, s.persistLine(sess.UserID, line), nil
}

// RemoveItem deletes the line locally and dispatches the backend delete.
// Removing an absent line is a no-op on both sides.
func (s *cartService) RemoveItem(ctx context.Context, sess *session.Session, productID uuid.UUID) <-chan error {
	sess.Do(func() {
		sess.Cart.RemoveItem(productID)
	})

	return s.detach(func(ctx context.Context) error {
		return s.cartRepo.Delete(ctx, sess.UserID, productID)
	})
}

// Lines returns the session's cart lines.
func (s *cartService) Lines(sess *session.Session) []domain.CartLine {
	var lines []domain.CartLine
	sess.Do(func() {
		lines = sess.Cart.Lines()
	})
	return lines
}

// Totals recomputes the derived totals from the current lines.
func (s *cartService) Totals(sess *session.Session) pricing.Totals {
	return pricing.Calculate(s.Lines(sess), s.pricingCfg)
}

func (s *cartService) persistLine(userID uuid.UUID, line domain.CartLine) <-chan error {
	return s.detach(func(ctx context.Context) error {
		return s.cartRepo.Upsert(ctx, userID, line.Product.ID, line.Quantity)
	})
}

// detach runs the write in the background. The request context is not used:
// navigating away does not cancel an already-dispatched write.
func (s *cartService) detach(fn func(context.Context) error) <-chan error {
	result := make(chan error, 1)
	go func() {
		err := fn(context.Background())
		if err != nil {
			s.logger.Warn("Cart write-through failed", zap.Error(err))
		}
		result <- err
		close(result)
	}()
	return result
}
