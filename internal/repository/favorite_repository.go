package repository

import (
	"context"
	"database/sql"
	"fmt"

	"naira-store/internal/domain"

	"github.com/google/uuid"
)

// FavoriteRepository persists the per-user favorites set. Set semantics:
// adding an existing favorite is a no-op at the database level.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	ListProductsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Product, error)
}

type favoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new instance of FavoriteRepository
func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts the (user, product) pair; duplicates are ignored
func (r *favoriteRepository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	query := `
		INSERT INTO favorites (user_id, product_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

// Remove deletes the pair; removing an absent favorite is a no-op
func (r *favoriteRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

// ListProductsByUser retrieves the favorited product snapshots
func (r *favoriteRepository) ListProductsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, prefixedProductColumns("p"))

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		products = append(products, *product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return products, nil
}
