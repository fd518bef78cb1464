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
	ErrBannerNotFound = errors.New("banner not found")
)

// BannerRepository defines the interface for delivery banner data access
type BannerRepository interface {
	Create(ctx context.Context, banner *domain.Banner) error
	Update(ctx context.Context, banner *domain.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]*domain.Banner, error)
	List(ctx context.Context) ([]*domain.Banner, error)
}

type bannerRepository struct {
	db *sql.DB
}

// NewBannerRepository creates a new instance of BannerRepository
func NewBannerRepository(db *sql.DB) BannerRepository {
	return &bannerRepository{db: db}
}

// Create inserts a new banner message
func (r *bannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	query := `
		INSERT INTO delivery_banner_messages (id, message, icon_name, active, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		banner.ID,
		banner.Message,
		banner.IconName,
		banner.Active,
		banner.SortOrder,
		banner.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}

	return nil
}

// Update rewrites a banner's message, icon, active flag and position
func (r *bannerRepository) Update(ctx context.Context, banner *domain.Banner) error {
	query := `
		UPDATE delivery_banner_messages
		SET message = $2, icon_name = $3, active = $4, sort_order = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, banner.ID, banner.Message, banner.IconName, banner.Active, banner.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrBannerNotFound
	}

	return nil
}

// Delete removes a banner
func (r *bannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM delivery_banner_messages WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrBannerNotFound
	}

	return nil
}

// ListActive retrieves the banners currently shown on the storefront,
// in display order
func (r *bannerRepository) ListActive(ctx context.Context) ([]*domain.Banner, error) {
	return r.list(ctx, true)
}

// List retrieves all banners for the admin surface
func (r *bannerRepository) List(ctx context.Context) ([]*domain.Banner, error) {
	return r.list(ctx, false)
}

func (r *bannerRepository) list(ctx context.Context, activeOnly bool) ([]*domain.Banner, error) {
	query := `
		SELECT id, message, icon_name, active, sort_order, created_at
		FROM delivery_banner_messages
	`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	defer rows.Close()

	banners := []*domain.Banner{}
	for rows.Next() {
		banner := &domain.Banner{}
		err := rows.Scan(
			&banner.ID,
			&banner.Message,
			&banner.IconName,
			&banner.Active,
			&banner.SortOrder,
			&banner.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan banner: %w", err)
		}
		banners = append(banners, banner)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating banners: %w", err)
	}

	return banners, nil
}
