package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"naira-store/internal/checkout"
	"naira-store/internal/domain"
	"naira-store/internal/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	mu      sync.Mutex
	byKey   map[string]*domain.Order
	failAll bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byKey: make(map[string]*domain.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("backend unavailable")
	}
	if existing, ok := f.byKey[order.IdempotencyKey]; ok {
		return existing, nil
	}
	f.byKey[order.IdempotencyKey] = order
	return order, nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.byKey {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, errors.New("order not found")
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Order
	for _, o := range f.byKey {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	order, err := f.FindByID(ctx, id)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	order.Status = status
	return nil
}

type fakeUploader struct {
	uploads []string
	fail    bool
}

func (f *fakeUploader) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error) {
	if f.fail {
		return "", errors.New("upload failed")
	}
	url := "https://cdn.example.com/" + bucket + "/" + key
	f.uploads = append(f.uploads, url)
	return url, nil
}

func validTestShipping() checkout.ShippingDetails {
	return checkout.ShippingDetails{
		FullName:     "Ada Obi",
		AddressLine1: "12 Marina Road",
		City:         "Lagos",
		State:        "Lagos",
		PostalCode:   "101001",
		Phone:        "+2348012345678",
		Email:        "ada@example.com",
	}
}

func validTestPayment() checkout.PaymentDetails {
	return checkout.PaymentDetails{
		Method:      checkout.PaymentMethodCard,
		CardHolder:  "Ada Obi",
		CardNumber:  "4242424242424242",
		ExpiryMonth: 12,
		ExpiryYear:  2030,
		CVV:         "123",
	}
}

func newCheckoutFixture(t *testing.T) (CheckoutService, *fakeOrderRepo, *fakeCartRepo, *session.Session) {
	t.Helper()
	orderRepo := newFakeOrderRepo()
	cartRepo := newFakeCartRepo()
	svc := NewCheckoutService(orderRepo, cartRepo, &fakeUploader{}, pricingTestConfig(), zap.NewNop())

	sess := newTestSession(t)
	product := testProduct("Gas Cooker", 20000, 1)
	sess.Do(func() {
		sess.Cart.AddItem(*product, 1)
	})
	return svc, orderRepo, cartRepo, sess
}

func TestCheckoutBeginWithEmptyCart(t *testing.T) {
	svc := NewCheckoutService(newFakeOrderRepo(), newFakeCartRepo(), &fakeUploader{}, pricingTestConfig(), zap.NewNop())
	sess := newTestSession(t)

	assert.Equal(t, checkout.StateEmptyCart, svc.Begin(sess))
}

func TestCheckoutHappyPath(t *testing.T) {
	svc, orderRepo, _, sess := newCheckoutFixture(t)
	ctx := context.Background()

	require.Equal(t, checkout.StateShipping, svc.Begin(sess))
	require.NoError(t, svc.SubmitShipping(sess, validTestShipping()))
	require.NoError(t, svc.SubmitPayment(sess, validTestPayment()))

	summary, err := svc.Summary(sess)
	require.NoError(t, err)
	assert.True(t, summary.Totals.Total.Equal(decimal.NewFromInt(23500)))
	assert.Equal(t, "₦23,500.00", summary.Display.Total)

	order, err := svc.PlaceOrder(ctx, sess, "key-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(23500)))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Gas Cooker", order.Items[0].Name)

	// The cart is cleared and the wizard finished only after the commit.
	sess.Do(func() {
		assert.True(t, sess.Cart.IsEmpty())
	})
	assert.Len(t, orderRepo.byKey, 1)
}

func TestCheckoutPlaceOrderRequiresReviewState(t *testing.T) {
	svc, _, _, sess := newCheckoutFixture(t)

	svc.Begin(sess)
	require.NoError(t, svc.SubmitShipping(sess, validTestShipping()))

	_, err := svc.PlaceOrder(context.Background(), sess, "key-1")
	require.ErrorIs(t, err, checkout.ErrOrderNotReady)
}

func TestCheckoutPlaceOrderWithoutBegin(t *testing.T) {
	svc, _, _, sess := newCheckoutFixture(t)

	_, err := svc.PlaceOrder(context.Background(), sess, "key-1")
	require.ErrorIs(t, err, ErrCheckoutNotStarted)
}

func TestCheckoutBackendFailureLeavesReviewState(t *testing.T) {
	svc, orderRepo, _, sess := newCheckoutFixture(t)

	svc.Begin(sess)
	require.NoError(t, svc.SubmitShipping(sess, validTestShipping()))
	require.NoError(t, svc.SubmitPayment(sess, validTestPayment()))

	orderRepo.failAll = true
	_, err := svc.PlaceOrder(context.Background(), sess, "key-1")
	require.Error(t, err)

	// The wizard stays on the review step and the cart is untouched, so
	// the user can retry.
	state, err := svc.CurrentState(sess)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateReview, state)
	sess.Do(func() {
		assert.False(t, sess.Cart.IsEmpty())
	})
}

func TestCheckoutIdempotentReplay(t *testing.T) {
	svc, orderRepo, _, sess := newCheckoutFixture(t)
	ctx := context.Background()

	svc.Begin(sess)
	require.NoError(t, svc.SubmitShipping(sess, validTestShipping()))
	require.NoError(t, svc.SubmitPayment(sess, validTestPayment()))

	first, err := svc.PlaceOrder(ctx, sess, "key-dup")
	require.NoError(t, err)

	// Re-seed the cart and wizard to simulate a retried submission with
	// the same idempotency key.
	sess.Do(func() {
		sess.Cart.AddItem(*testProduct("Gas Cooker", 20000, 1), 1)
	})
	svc.Begin(sess)
	require.NoError(t, svc.SubmitShipping(sess, validTestShipping()))
	require.NoError(t, svc.SubmitPayment(sess, validTestPayment()))

	second, err := svc.PlaceOrder(ctx, sess, "key-dup")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, orderRepo.byKey, 1)
}

func TestCheckoutBackPreservesEnteredData(t *testing.T) {
	svc, _, _, sess := newCheckoutFixture(t)

	svc.Begin(sess)
	require.NoError(t, svc.SubmitShipping(sess, validTestShipping()))
	require.NoError(t, svc.Back(sess))

	state, err := svc.CurrentState(sess)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateShipping, state)

	// Moving forward again still works with the kept form data.
	require.NoError(t, svc.SubmitShipping(sess, validTestShipping()))
	state, _ = svc.CurrentState(sess)
	assert.Equal(t, checkout.StatePayment, state)
}

func TestCheckoutUploadReceipt(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewCheckoutService(newFakeOrderRepo(), newFakeCartRepo(), uploader, pricingTestConfig(), zap.NewNop())
	sess := newTestSession(t)

	url, err := svc.UploadReceipt(context.Background(), sess, "receipt.png", "image/png", nil)
	require.NoError(t, err)
	assert.Contains(t, url, "receipts")
	assert.Len(t, uploader.uploads, 1)
}

func TestCheckoutAbandonDropsWizard(t *testing.T) {
	svc, _, _, sess := newCheckoutFixture(t)

	svc.Begin(sess)
	require.NoError(t, svc.SubmitShipping(sess, validTestShipping()))
	svc.Abandon(sess)

	_, err := svc.CurrentState(sess)
	require.ErrorIs(t, err, ErrCheckoutNotStarted)
}
