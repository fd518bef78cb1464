package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"naira-store/internal/domain"
	custommiddleware "naira-store/internal/middleware"
	"naira-store/internal/repository"
	"naira-store/internal/service"
	"naira-store/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProductRepo struct {
	products map[uuid.UUID]*domain.Product
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	repo := &stubProductRepo{products: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (s *stubProductRepo) Create(ctx context.Context, product *domain.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *domain.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.products, id)
	return nil
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (s *stubProductRepo) List(ctx context.Context, categoryID *uuid.UUID, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	return nil, 0, nil
}

func (s *stubProductRepo) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	return nil, 0, nil
}

func (s *stubProductRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, reviewCount int) error {
	return nil
}

type stubFavoriteRepo struct{}

func (stubFavoriteRepo) Add(ctx context.Context, userID, productID uuid.UUID) error    { return nil }
func (stubFavoriteRepo) Remove(ctx context.Context, userID, productID uuid.UUID) error { return nil }
func (stubFavoriteRepo) ListProductsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Product, error) {
	return nil, nil
}

// fakeAuth stands in for the JWT middleware, stamping a fixed user into the
// request context.
func fakeAuth(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), custommiddleware.UserIDKey, userID.String())
			ctx = context.WithValue(ctx, custommiddleware.UserRoleKey, "user")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func compareTestProduct(name string) *domain.Product {
	return &domain.Product{
		ID:               uuid.New(),
		Name:             name,
		UnitPrice:        decimal.NewFromInt(5000),
		OriginalPrice:    decimal.NewFromInt(5000),
		MinOrderQuantity: 1,
		InStock:          true,
	}
}

func newFavoritesTestServer(t *testing.T, userID uuid.UUID, products ...*domain.Product) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	favoriteRepo := stubFavoriteRepo{}
	sessions := session.NewManager(3, favoriteRepo, stubCartLoader{}, logger)
	sessions.SignIn(context.Background(), userID)

	favoritesService := service.NewFavoritesService(newStubProductRepo(products...), favoriteRepo, logger)
	handler := NewFavoritesHandler(favoritesService, sessions, logger)

	router := chi.NewRouter()
	handler.RegisterRoutes(router, fakeAuth(userID))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody(resp *http.Response, v interface{}) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

func doPut(t *testing.T, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAddCompareRejectsBeyondLimit(t *testing.T) {
	userID := uuid.New()
	products := []*domain.Product{
		compareTestProduct("Blender"),
		compareTestProduct("Toaster"),
		compareTestProduct("Kettle"),
		compareTestProduct("Microwave"),
	}
	srv := newFavoritesTestServer(t, userID, products...)

	// First three adds succeed
	for _, p := range products[:3] {
		resp := doPut(t, fmt.Sprintf("%s/api/compare/%s", srv.URL, p.ID))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// The fourth is rejected and nothing is evicted
	resp := doPut(t, fmt.Sprintf("%s/api/compare/%s", srv.URL, products[3].ID))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	listResp, err := http.Get(srv.URL + "/api/compare")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var listed []domain.Product
	require.NoError(t, decodeBody(listResp, &listed))
	require.Len(t, listed, 3)
	for i, p := range products[:3] {
		assert.Equal(t, p.ID, listed[i].ID, "compare list keeps insertion order")
	}
}

func TestAddCompareDuplicateIsNoOp(t *testing.T) {
	userID := uuid.New()
	product := compareTestProduct("Blender")
	srv := newFavoritesTestServer(t, userID, product)

	for i := 0; i < 2; i++ {
		resp := doPut(t, fmt.Sprintf("%s/api/compare/%s", srv.URL, product.ID))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	listResp, err := http.Get(srv.URL + "/api/compare")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var listed []domain.Product
	require.NoError(t, decodeBody(listResp, &listed))
	assert.Len(t, listed, 1)
}

func TestAddCompareUnknownProduct(t *testing.T) {
	userID := uuid.New()
	srv := newFavoritesTestServer(t, userID)

	resp := doPut(t, fmt.Sprintf("%s/api/compare/%s", srv.URL, uuid.New()))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddFavoriteTwiceStaysSingle(t *testing.T) {
	userID := uuid.New()
	product := compareTestProduct("Blender")
	srv := newFavoritesTestServer(t, userID, product)

	for i := 0; i < 2; i++ {
		resp := doPut(t, fmt.Sprintf("%s/api/favorites/%s", srv.URL, product.ID))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	listResp, err := http.Get(srv.URL + "/api/favorites")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var listed []domain.Product
	require.NoError(t, decodeBody(listResp, &listed))
	assert.Len(t, listed, 1)
}
