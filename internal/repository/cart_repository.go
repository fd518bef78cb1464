package repository

import (
	"context"
	"database/sql"
	"fmt"

	"naira-store/internal/domain"

	"github.com/google/uuid"
)

// CartRepository persists the durable copy of each user's cart. The
// in-memory session store is authoritative while the user is signed in;
// rows here exist so the cart survives sign-out and hydrates the next
// session. Writes are last-write-wins with no concurrency tokens.
type CartRepository interface {
	Upsert(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	Delete(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	LinesByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error)
}

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

// Upsert writes the line's current quantity, inserting or overwriting
func (r *cartRepository) Upsert(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`

	_, err := r.db.ExecContext(ctx, query, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

// Delete removes the line; deleting an absent line is a no-op
func (r *cartRepository) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	return nil
}

// Clear removes all of the user's lines, used after order placement
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// LinesByUser retrieves the persisted lines joined to their product
// snapshots, in the order they were added
func (r *cartRepository) LinesByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	query := fmt.Sprintf(`
		SELECT ci.quantity, ci.added_at, %s
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.added_at ASC
	`, prefixedProductColumns("p"))

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var line domain.CartLine
		product, err := scanProductWith(rows, &line.Quantity, &line.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		line.Product = *product
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return lines, nil
}
