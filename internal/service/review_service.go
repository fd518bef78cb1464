package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"naira-store/internal/domain"
	"naira-store/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ReviewService defines the interface for product review business logic.
// Live reviews are authored by signed-in users; legacy reviews exist only as
// imported rows and are read, never written, through this service.
type ReviewService interface {
	CreateReview(ctx context.Context, userID, productID uuid.UUID, rating int, comment string) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateReview stores a live review and refreshes the product's aggregate
// rating. The aggregate spans both review variants.
func (s *reviewService) CreateReview(ctx context.Context, userID, productID uuid.UUID, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	review := &domain.Review{
		ID:        uuid.New(),
		ProductID: productID,
		Kind:      domain.ReviewKindLive,
		Live: &domain.LiveReview{
			UserID:    user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Rating:    rating,
			Comment:   comment,
		},
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.refreshAggregate(ctx, productID); err != nil {
		// The review itself committed; a stale aggregate self-heals on the
		// next review.
		s.logger.Warn("Failed to refresh product rating aggregate",
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
	}

	return review, nil
}

// ListByProduct returns all reviews for a product, newest first, both
// imported and live.
func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) refreshAggregate(ctx context.Context, productID uuid.UUID) error {
	avg, count, err := s.reviewRepo.AggregateByProduct(ctx, productID)
	if err != nil {
		return err
	}
	return s.productRepo.UpdateRating(ctx, productID, avg, count)
}
