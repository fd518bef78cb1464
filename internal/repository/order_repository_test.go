package repository

import (
	"context"
	"testing"
	"time"

	"naira-store/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertTestUser(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := testDB.Exec(`
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, created_at, updated_at)
		VALUES ($1, $2, 'x', 'Ada', 'Obi', 'user', NOW(), NOW())
	`, id, id.String()+"@example.com")
	require.NoError(t, err)
	return id
}

func insertTestProduct(t *testing.T, price int64, moq int) domain.Product {
	t.Helper()
	ctx := context.Background()

	catRepo := NewCategoryRepository(testDB)
	category := &domain.Category{
		ID:        uuid.New(),
		Name:      "Category " + uuid.New().String(),
		CreatedAt: time.Now(),
	}
	require.NoError(t, catRepo.Create(ctx, category))

	productRepo := NewProductRepository(testDB)
	product := &domain.Product{
		ID:               uuid.New(),
		Name:             "Product " + uuid.New().String(),
		Description:      "test product",
		CategoryID:       category.ID,
		ImageURLs:        []string{"https://img.example.com/a.jpg"},
		UnitPrice:        decimal.NewFromInt(price),
		OriginalPrice:    decimal.NewFromInt(price),
		MinOrderQuantity: moq,
		InStock:          true,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	require.NoError(t, productRepo.Create(ctx, product))
	return *product
}

func testOrder(userID uuid.UUID, product domain.Product) *domain.Order {
	return &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		IdempotencyKey:  uuid.New().String(),
		Status:          domain.OrderStatusPending,
		ShippingName:    "Ada Obi",
		ShippingAddress: "12 Marina Road",
		ShippingCity:    "Lagos",
		ShippingState:   "Lagos",
		ShippingPostal:  "101241",
		ShippingPhone:   "+2348012345678",
		ShippingEmail:   "ada@example.com",
		PaymentMethod:   "card",
		Subtotal:        decimal.NewFromInt(20000),
		VAT:             decimal.Zero,
		Shipping:        decimal.NewFromInt(3500),
		Total:           decimal.NewFromInt(23500),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
		Items: []domain.OrderItem{
			{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.UnitPrice,
				Quantity:  2,
			},
		},
	}
}

func TestOrderCreateAndFetch(t *testing.T) {
	ctx := context.Background()
	userID := insertTestUser(t)
	product := insertTestProduct(t, 10000, 1)
	repo := NewOrderRepository(testDB)

	order := testOrder(userID, product)
	created, err := repo.Create(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, created.ID)

	fetched, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, fetched.Status)
	assert.True(t, fetched.Total.Equal(decimal.NewFromInt(23500)))
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, product.ID, fetched.Items[0].ProductID)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
}

func TestOrderIdempotencyKeyReplayReturnsExistingOrder(t *testing.T) {
	ctx := context.Background()
	userID := insertTestUser(t)
	product := insertTestProduct(t, 10000, 1)
	repo := NewOrderRepository(testDB)

	first := testOrder(userID, product)
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	replay := testOrder(userID, product)
	replay.IdempotencyKey = first.IdempotencyKey

	got, err := repo.Create(ctx, replay)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID, "replayed key must return the original order")

	orders, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderStatusLifecycle(t *testing.T) {
	ctx := context.Background()
	userID := insertTestUser(t)
	product := insertTestProduct(t, 5000, 1)
	repo := NewOrderRepository(testDB)

	order := testOrder(userID, product)
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, domain.OrderStatusProcessing))

	fetched, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, fetched.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), domain.OrderStatusCancelled), ErrOrderNotFound)
}
