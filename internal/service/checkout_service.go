package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"naira-store/internal/checkout"
	"naira-store/internal/domain"
	"naira-store/internal/pricing"
	"naira-store/internal/repository"
	"naira-store/internal/session"
	"naira-store/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCheckoutNotStarted = errors.New("checkout has not been started")
	ErrEmptyCart          = errors.New("cart is empty")
)

// CheckoutService drives the step sequencer and performs order placement.
// All validation failures are local and recoverable; backend failures leave
// the sequencer where it was.
type CheckoutService interface {
	Begin(sess *session.Session) checkout.State
	CurrentState(sess *session.Session) (checkout.State, error)
	SubmitShipping(sess *session.Session, details checkout.ShippingDetails) error
	SubmitPayment(sess *session.Session, details checkout.PaymentDetails) error
	Back(sess *session.Session) error
	Abandon(sess *session.Session)
	UploadReceipt(ctx context.Context, sess *session.Session, filename, contentType string, body io.Reader) (string, error)
	Summary(sess *session.Session) (OrderSummary, error)
	PlaceOrder(ctx context.Context, sess *session.Session, idempotencyKey string) (*domain.Order, error)
}

// OrderSummary is the review-step view: the lines about to be ordered with
// their derived totals.
type OrderSummary struct {
	Lines    []domain.CartLine       `json:"lines"`
	Totals   pricing.Totals          `json:"totals"`
	Display  pricing.FormattedTotals `json:"display"`
	Shipping checkout.ShippingDetails `json:"shipping"`
	Payment  string                  `json:"payment_method"`
}

type checkoutService struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	uploader   storage.Uploader
	pricingCfg pricing.Config
	logger     *zap.Logger
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	uploader storage.Uploader,
	pricingCfg pricing.Config,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		uploader:   uploader,
		pricingCfg: pricingCfg,
		logger:     logger,
	}
}

// Begin enters checkout, landing on Shipping or the EmptyCart terminal.
func (s *checkoutService) Begin(sess *session.Session) checkout.State {
	var state checkout.State
	sess.Do(func() {
		state = sess.BeginCheckout().State()
	})
	return state
}

// CurrentState returns the in-flight wizard state.
func (s *checkoutService) CurrentState(sess *session.Session) (checkout.State, error) {
	var (
		state checkout.State
		err   error
	)
	sess.Do(func() {
		seq := sess.Checkout()
		if seq == nil {
			err = ErrCheckoutNotStarted
			return
		}
		state = seq.State()
	})
	return state, err
}

// SubmitShipping validates and advances step 1.
func (s *checkoutService) SubmitShipping(sess *session.Session, details checkout.ShippingDetails) error {
	var err error
	sess.Do(func() {
		seq := sess.Checkout()
		if seq == nil {
			err = ErrCheckoutNotStarted
			return
		}
		err = seq.SubmitShipping(details)
	})
	return err
}

// SubmitPayment validates and advances step 2.
func (s *checkoutService) SubmitPayment(sess *session.Session, details checkout.PaymentDetails) error {
	var err error
	sess.Do(func() {
		seq := sess.Checkout()
		if seq == nil {
			err = ErrCheckoutNotStarted
			return
		}
		err = seq.SubmitPayment(details)
	})
	return err
}

// Back steps the wizard backwards, keeping entered data.
func (s *checkoutService) Back(sess *session.Session) error {
	var err error
	sess.Do(func() {
		seq := sess.Checkout()
		if seq == nil {
			err = ErrCheckoutNotStarted
			return
		}
		err = seq.Back()
	})
	return err
}

// Abandon drops the in-flight wizard, modeling navigation away.
func (s *checkoutService) Abandon(sess *session.Session) {
	sess.Do(func() {
		sess.AbandonCheckout()
	})
}

// UploadReceipt stores a bank-transfer receipt image and returns its public
// URL. The payment step cannot complete until this URL exists.
func (s *checkoutService) UploadReceipt(ctx context.Context, sess *session.Session, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s%s", sess.UserID, uuid.New(), path.Ext(filename))
	url, err := s.uploader.Upload(ctx, storage.BucketReceipts, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}

	s.logger.Info("Receipt uploaded",
		zap.String("user_id", sess.UserID.String()),
		zap.String("url", url),
	)
	return url, nil
}

// Summary builds the review-step order summary.
func (s *checkoutService) Summary(sess *session.Session) (OrderSummary, error) {
	var (
		summary OrderSummary
		err     error
	)
	sess.Do(func() {
		seq := sess.Checkout()
		if seq == nil {
			err = ErrCheckoutNotStarted
			return
		}
		if seq.Shipping() == nil || seq.Payment() == nil {
			err = checkout.ErrOrderNotReady
			return
		}
		lines := sess.Cart.Lines()
		totals := pricing.Calculate(lines, s.pricingCfg)
		summary = OrderSummary{
			Lines:    lines,
			Totals:   totals,
			Display:  totals.Format(),
			Shipping: *seq.Shipping(),
			Payment:  seq.Payment().Method,
		}
	})
	return summary, err
}

// PlaceOrder performs the Review → OrderPlaced transition: it persists the
// order transactionally under the idempotency key, then clears the cart and
// tears the wizard down. A backend failure leaves the sequencer in Review
// and the cart intact.
func (s *checkoutService) PlaceOrder(ctx context.Context, sess *session.Session, idempotencyKey string) (*domain.Order, error) {
	var (
		order    *domain.Order
		buildErr error
	)

	sess.Do(func() {
		seq := sess.Checkout()
		if seq == nil {
			buildErr = ErrCheckoutNotStarted
			return
		}
		if seq.State() != checkout.StateReview {
			buildErr = fmt.Errorf("%w: %s", checkout.ErrOrderNotReady, seq.State())
			return
		}
		if sess.Cart.IsEmpty() {
			buildErr = ErrEmptyCart
			return
		}
		order = s.buildOrder(sess, seq, idempotencyKey)
	})
	if buildErr != nil {
		return nil, buildErr
	}

	created, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Only after the insert commits: clear the cart and finish the wizard.
	sess.Do(func() {
		sess.Cart.Clear()
		if seq := sess.Checkout(); seq != nil {
			if err := seq.MarkPlaced(); err != nil {
				s.logger.Warn("Checkout state changed during order placement",
					zap.String("user_id", sess.UserID.String()),
					zap.Error(err),
				)
			}
		}
	})

	// Durable cart rows are cleared best-effort; the in-memory clear above
	// is authoritative for this session.
	go func() {
		if err := s.cartRepo.Clear(context.Background(), sess.UserID); err != nil {
			s.logger.Warn("Failed to clear persisted cart after order placement",
				zap.String("user_id", sess.UserID.String()),
				zap.Error(err),
			)
		}
	}()

	s.logger.Info("Order placed",
		zap.String("order_id", created.ID.String()),
		zap.String("user_id", sess.UserID.String()),
		zap.String("total", created.Total.String()),
	)

	return created, nil
}

func (s *checkoutService) buildOrder(sess *session.Session, seq *checkout.Sequencer, idempotencyKey string) *domain.Order {
	lines := sess.Cart.Lines()
	totals := pricing.Calculate(lines, s.pricingCfg)
	shipping := seq.Shipping()
	payment := seq.Payment()

	address := shipping.AddressLine1
	if shipping.AddressLine2 != "" {
		address += ", " + shipping.AddressLine2
	}

	now := time.Now()
	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          sess.UserID,
		IdempotencyKey:  idempotencyKey,
		Status:          domain.OrderStatusPending,
		ShippingName:    shipping.FullName,
		ShippingAddress: address,
		ShippingCity:    shipping.City,
		ShippingState:   shipping.State,
		ShippingPostal:  shipping.PostalCode,
		ShippingPhone:   shipping.Phone,
		ShippingEmail:   shipping.Email,
		PaymentMethod:   payment.Method,
		ReceiptURL:      payment.ReceiptURL,
		Subtotal:        totals.Subtotal,
		VAT:             totals.VAT,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, line := range lines {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	return order
}
