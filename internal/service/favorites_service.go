package service

import (
	"context"
	"fmt"

	"naira-store/internal/domain"
	"naira-store/internal/repository"
	"naira-store/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoritesService mutates the favorites and compare side-stores. Favorites
// write through to the favorites table with the same observable async
// contract as the cart; the compare list is session-only.
type FavoritesService interface {
	AddFavorite(ctx context.Context, sess *session.Session, productID uuid.UUID) (<-chan error, error)
	RemoveFavorite(ctx context.Context, sess *session.Session, productID uuid.UUID) <-chan error
	Favorites(sess *session.Session) []domain.Product
	AddCompare(ctx context.Context, sess *session.Session, productID uuid.UUID) error
	RemoveCompare(sess *session.Session, productID uuid.UUID)
	Compare(sess *session.Session) []domain.Product
}

type favoritesService struct {
	productRepo  repository.ProductRepository
	favoriteRepo repository.FavoriteRepository
	logger       *zap.Logger
}

// NewFavoritesService creates a new instance of FavoritesService
func NewFavoritesService(
	productRepo repository.ProductRepository,
	favoriteRepo repository.FavoriteRepository,
	logger *zap.Logger,
) FavoritesService {
	return &favoritesService{
		productRepo:  productRepo,
		favoriteRepo: favoriteRepo,
		logger:       logger,
	}
}

// AddFavorite adds the product snapshot to the session set and dispatches
// the backend insert. A failed lookup aborts with the set unchanged.
func (s *favoritesService) AddFavorite(ctx context.Context, sess *session.Session, productID uuid.UUID) (<-chan error, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	sess.Do(func() {
		sess.Favorites.Add(*product)
	})

	return s.detach(func(ctx context.Context) error {
		return s.favoriteRepo.Add(ctx, sess.UserID, productID)
	}), nil
}

// RemoveFavorite removes locally and dispatches the backend delete.
func (s *favoritesService) RemoveFavorite(ctx context.Context, sess *session.Session, productID uuid.UUID) <-chan error {
	sess.Do(func() {
		sess.Favorites.Remove(productID)
	})

	return s.detach(func(ctx context.Context) error {
		return s.favoriteRepo.Remove(ctx, sess.UserID, productID)
	})
}

// Favorites returns the session's favorited products.
func (s *favoritesService) Favorites(sess *session.Session) []domain.Product {
	var products []domain.Product
	sess.Do(func() {
		products = sess.Favorites.Products()
	})
	return products
}

// AddCompare adds the product to the bounded compare list. At capacity the
// add is rejected with sidestore.ErrCompareLimitReached; nothing is evicted.
func (s *favoritesService) AddCompare(ctx context.Context, sess *session.Session, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to resolve product: %w", err)
	}

	var addErr error
	sess.Do(func() {
		addErr = sess.Compare.Add(*product)
	})
	return addErr
}

// RemoveCompare removes the product from the compare list.
func (s *favoritesService) RemoveCompare(sess *session.Session, productID uuid.UUID) {
	sess.Do(func() {
		sess.Compare.Remove(productID)
	})
}

// Compare returns the compared products in insertion order.
func (s *favoritesService) Compare(sess *session.Session) []domain.Product {
	var products []domain.Product
	sess.Do(func() {
		products = sess.Compare.Products()
	})
	return products
}

func (s *favoritesService) detach(fn func(context.Context) error) <-chan error {
	result := make(chan error, 1)
	go func() {
		err := fn(context.Background())
		if err != nil {
			s.logger.Warn("Favorites write-through failed", zap.Error(err))
		}
		result <- err
		close(result)
	}()
	return result
}
