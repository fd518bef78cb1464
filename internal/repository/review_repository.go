package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"naira-store/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound = errors.New("review not found")
)

// ReviewRepository defines the interface for product review data access.
// The product_reviews table holds both legacy (imported) and live rows; the
// kind column is the explicit discriminant and scanning populates exactly
// one variant of the tagged union.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
	AggregateByProduct(ctx context.Context, productID uuid.UUID) (avgRating float64, count int, err error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review row for the variant selected by Kind
func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := review.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO product_reviews (id, product_id, kind, user_id, reviewer_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var (
		userID       interface{}
		reviewerName string
		rating       int
		comment      string
	)
	switch review.Kind {
	case domain.ReviewKindLegacy:
		userID = nil
		reviewerName = review.Legacy.ReviewerName
		rating = review.Legacy.Rating
		comment = review.Legacy.Comment
	case domain.ReviewKindLive:
		userID = review.Live.UserID
		rating = review.Live.Rating
		comment = review.Live.Comment
	}

	_, err := r.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.ProductID,
		review.Kind,
		userID,
		reviewerName,
		rating,
		comment,
		review.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListByProduct retrieves a product's reviews, newest first. Live rows are
// joined to users for the author's display name.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	query := `
		SELECT rv.id, rv.product_id, rv.kind, rv.user_id, rv.reviewer_name,
		       rv.rating, rv.comment, rv.created_at,
		       COALESCE(u.first_name, ''), COALESCE(u.last_name, '')
		FROM product_reviews rv
		LEFT JOIN users u ON u.id = rv.user_id
		WHERE rv.product_id = $1
		ORDER BY rv.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		var (
			review       domain.Review
			userID       sql.Null[uuid.UUID]
			reviewerName string
			rating       int
			comment      string
			firstName    string
			lastName     string
		)

		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.Kind,
			&userID,
			&reviewerName,
			&rating,
			&comment,
			&review.CreatedAt,
			&firstName,
			&lastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		switch review.Kind {
		case domain.ReviewKindLegacy:
			review.Legacy = &domain.LegacyReview{
				ReviewerName: reviewerName,
				Rating:       rating,
				Comment:      comment,
			}
		case domain.ReviewKindLive:
			if !userID.Valid {
				return nil, fmt.Errorf("live review %s has no user: %w", review.ID, domain.ErrUnknownReviewKind)
			}
			review.Live = &domain.LiveReview{
				UserID:    userID.V,
				FirstName: firstName,
				LastName:  lastName,
				Rating:    rating,
				Comment:   comment,
			}
		default:
			return nil, fmt.Errorf("review %s: %w", review.ID, domain.ErrUnknownReviewKind)
		}

		reviews = append(reviews, &review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// AggregateByProduct returns the average rating and review count across
// both variants
func (r *reviewRepository) AggregateByProduct(ctx context.Context, productID uuid.UUID) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM product_reviews
		WHERE product_id = $1
	`

	var (
		avg   float64
		count int
	)
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	return avg, count, nil
}
