package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewKind is the explicit discriminant for the two review shapes the
// product_reviews table holds: rows imported from the legacy store and rows
// authored live by signed-in users.
type ReviewKind string

const (
	ReviewKindLegacy ReviewKind = "legacy"
	ReviewKindLive   ReviewKind = "live"
)

var ErrUnknownReviewKind = errors.New("unknown review kind")

// LegacyReview is an imported review. It carries only a free-form reviewer
// name; there is no user account behind it.
type LegacyReview struct {
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// LiveReview is a review authored through the storefront by a signed-in user.
type LiveReview struct {
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

// Review is a tagged union over the two shapes. Exactly one of Legacy/Live is
// non-nil, selected by Kind.
type Review struct {
	ID        uuid.UUID     `json:"id"`
	ProductID uuid.UUID     `json:"product_id"`
	Kind      ReviewKind    `json:"kind"`
	Legacy    *LegacyReview `json:"legacy,omitempty"`
	Live      *LiveReview   `json:"live,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Rating returns the star rating regardless of variant.
func (r *Review) RatingValue() (int, error) {
	switch r.Kind {
	case ReviewKindLegacy:
		return r.Legacy.Rating, nil
	case ReviewKindLive:
		return r.Live.Rating, nil
	default:
		return 0, ErrUnknownReviewKind
	}
}

// Validate checks the discriminant matches the populated variant.
func (r *Review) Validate() error {
	switch r.Kind {
	case ReviewKindLegacy:
		if r.Legacy == nil || r.Live != nil {
			return ErrUnknownReviewKind
		}
	case ReviewKindLive:
		if r.Live == nil || r.Legacy != nil {
			return ErrUnknownReviewKind
		}
	default:
		return ErrUnknownReviewKind
	}
	return nil
}
