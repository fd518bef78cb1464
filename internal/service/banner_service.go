package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"naira-store/internal/domain"
	"naira-store/internal/repository"

	"github.com/google/uuid"
)

var ErrUnknownIcon = errors.New("unknown banner icon")

// bannerIcons is the icon registry: every icon the storefront can render.
// Banners referencing anything else are rejected at write time and flagged at
// load time, so a missing icon surfaces immediately instead of rendering a
// blank slot.
var bannerIcons = map[string]struct{}{
	"truck":    {},
	"clock":    {},
	"shield":   {},
	"gift":     {},
	"tag":      {},
	"headset":  {},
	"percent":  {},
	"location": {},
}

// KnownIcon reports whether name is in the icon registry.
func KnownIcon(name string) bool {
	_, ok := bannerIcons[name]
	return ok
}

// BannerService defines the interface for delivery banner business logic
type BannerService interface {
	CreateBanner(ctx context.Context, message, iconName string, sortOrder int) (*domain.Banner, error)
	UpdateBanner(ctx context.Context, id uuid.UUID, message, iconName string, active bool, sortOrder int) (*domain.Banner, error)
	DeleteBanner(ctx context.Context, id uuid.UUID) error
	ActiveBanners(ctx context.Context) ([]*domain.Banner, error)
	AllBanners(ctx context.Context) ([]*domain.Banner, error)
}

type bannerService struct {
	bannerRepo repository.BannerRepository
}

// NewBannerService creates a new instance of BannerService. It validates the
// stored banner catalog against the icon registry up front; an unknown icon
// name is a configuration error, not something to discover at render time.
func NewBannerService(ctx context.Context, bannerRepo repository.BannerRepository) (BannerService, error) {
	banners, err := bannerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load banner catalog: %w", err)
	}
	for _, b := range banners {
		if !KnownIcon(b.IconName) {
			return nil, fmt.Errorf("%w: banner %s references %q", ErrUnknownIcon, b.ID, b.IconName)
		}
	}

	return &bannerService{bannerRepo: bannerRepo}, nil
}

// CreateBanner stores a new banner, active by default.
func (s *bannerService) CreateBanner(ctx context.Context, message, iconName string, sortOrder int) (*domain.Banner, error) {
	if !KnownIcon(iconName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIcon, iconName)
	}

	banner := &domain.Banner{
		ID:        uuid.New(),
		Message:   message,
		IconName:  iconName,
		Active:    true,
		SortOrder: sortOrder,
		CreatedAt: time.Now(),
	}
	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}
	return banner, nil
}

// UpdateBanner applies the writable fields to an existing banner.
func (s *bannerService) UpdateBanner(ctx context.Context, id uuid.UUID, message, iconName string, active bool, sortOrder int) (*domain.Banner, error) {
	if !KnownIcon(iconName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIcon, iconName)
	}

	banner := &domain.Banner{
		ID:        id,
		Message:   message,
		IconName:  iconName,
		Active:    active,
		SortOrder: sortOrder,
	}
	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}
	return banner, nil
}

// DeleteBanner removes a banner.
func (s *bannerService) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	if err := s.bannerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	return nil
}

// ActiveBanners returns the banners currently in rotation, in sort order.
func (s *bannerService) ActiveBanners(ctx context.Context) ([]*domain.Banner, error) {
	banners, err := s.bannerRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active banners: %w", err)
	}
	return banners, nil
}

// AllBanners returns every banner, active or not, in sort order.
func (s *bannerService) AllBanners(ctx context.Context) ([]*domain.Banner, error) {
	banners, err := s.bannerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}
