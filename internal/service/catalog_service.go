package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"naira-store/internal/domain"
	"naira-store/internal/repository"
	"naira-store/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Products   []*domain.Product `json:"products"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name             string          `json:"name" validate:"required"`
	Description      string          `json:"description"`
	CategoryID       uuid.UUID       `json:"category_id" validate:"required"`
	ImageURLs        []string        `json:"image_urls"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	OriginalPrice    decimal.Decimal `json:"original_price"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	InStock          bool            `json:"in_stock"`
}

// CatalogService defines the interface for product and category business logic
type CatalogService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, categoryID *uuid.UUID, page, pageSize int, sortBy string, sortOrder repository.SortOrder) (ProductPage, error)
	SearchProducts(ctx context.Context, query string, page, pageSize int) (ProductPage, error)

	CreateCategory(ctx context.Context, name, description, imageURL string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name, description, imageURL string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	UploadCategoryImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	uploader     storage.Uploader
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	uploader storage.Uploader,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		uploader:     uploader,
	}
}

// CreateProduct creates a new catalog product. The discount percentage is
// derived from the original and current prices, never stored independently.
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	now := time.Now()
	product := &domain.Product{
		ID:               uuid.New(),
		Name:             input.Name,
		Description:      input.Description,
		CategoryID:       input.CategoryID,
		ImageURLs:        input.ImageURLs,
		UnitPrice:        input.UnitPrice,
		OriginalPrice:    input.OriginalPrice,
		DiscountPercent:  discountPercent(input.OriginalPrice, input.UnitPrice),
		MinOrderQuantity: input.MinOrderQuantity,
		InStock:          input.InStock,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies the writable fields to an existing product.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	product.Name = input.Name
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	product.ImageURLs = input.ImageURLs
	product.UnitPrice = input.UnitPrice
	product.OriginalPrice = input.OriginalPrice
	product.DiscountPercent = discountPercent(input.OriginalPrice, input.UnitPrice)
	product.MinOrderQuantity = input.MinOrderQuantity
	product.InStock = input.InStock
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// GetProduct retrieves a single product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListProducts returns one page of the catalog, optionally restricted to a
// category.
func (s *catalogService) ListProducts(ctx context.Context, categoryID *uuid.UUID, page, pageSize int, sortBy string, sortOrder repository.SortOrder) (ProductPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	products, total, err := s.productRepo.List(ctx, categoryID, page, pageSize, sortBy, sortOrder)
	if err != nil {
		return ProductPage{}, fmt.Errorf("failed to list products: %w", err)
	}
	return newProductPage(products, total, page, pageSize), nil
}

// SearchProducts returns one page of products matching the query string.
func (s *catalogService) SearchProducts(ctx context.Context, query string, page, pageSize int) (ProductPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	products, total, err := s.productRepo.Search(ctx, query, page, pageSize)
	if err != nil {
		return ProductPage{}, fmt.Errorf("failed to search products: %w", err)
	}
	return newProductPage(products, total, page, pageSize), nil
}

// CreateCategory creates a new product category.
func (s *catalogService) CreateCategory(ctx context.Context, name, description, imageURL string) (*domain.Category, error) {
	category := &domain.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   time.Now(),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// UpdateCategory applies the writable fields to an existing category.
func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name, description, imageURL string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	category.Name = name
	category.Description = description
	category.ImageURL = imageURL

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// ListCategories returns all categories.
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UploadCategoryImage stores a category image and returns its public URL.
func (s *catalogService) UploadCategoryImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s%s", uuid.New(), path.Ext(filename))
	url, err := s.uploader.Upload(ctx, storage.BucketCategoryImages, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to upload category image: %w", err)
	}
	return url, nil
}

// discountPercent derives the display discount from the price pair, rounded to
// the nearest whole percent. A zero or lower original price means no discount.
func discountPercent(original, current decimal.Decimal) int {
	if original.LessThanOrEqual(decimal.Zero) || current.GreaterThanOrEqual(original) {
		return 0
	}
	ratio := original.Sub(current).Div(original).Mul(decimal.NewFromInt(100))
	return int(ratio.Round(0).IntPart())
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func newProductPage(products []*domain.Product, total, page, pageSize int) ProductPage {
	totalPages := (total + pageSize - 1) / pageSize
	return ProductPage{
		Products:   products,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
