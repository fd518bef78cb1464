package transport

import (
	"errors"
	"net/http"

	"naira-store/internal/checkout"
	"naira-store/internal/middleware"
	"naira-store/internal/service"
	"naira-store/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxReceiptSize caps bank-transfer receipt uploads at 5 MiB.
const maxReceiptSize = 5 << 20

// PlaceOrderRequest represents the place-order request payload
type PlaceOrderRequest struct {
	IdempotencyKey string `json:"idempotency_key" validate:"required"`
}

// CheckoutStateView describes the wizard position in responses
type CheckoutStateView struct {
	State string `json:"state"`
	Step  int    `json:"step"`
}

// CheckoutHandler handles HTTP requests for the checkout wizard
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	sessions        *session.Manager
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, sessions *session.Manager, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		sessions:        sessions,
		logger:          logger,
	}
}

// RegisterRoutes registers all checkout routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/checkout", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Begin)
		r.Get("/", h.State)
		r.Delete("/", h.Abandon)
		r.Post("/shipping", h.SubmitShipping)
		r.Post("/payment", h.SubmitPayment)
		r.Post("/back", h.Back)
		r.Post("/receipt", h.UploadReceipt)
		r.Get("/summary", h.Summary)
		r.Post("/order", h.PlaceOrder)
	})
}

// Begin starts (or resumes) the checkout wizard
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	state := h.checkoutService.Begin(sess)
	middleware.RespondWithJSON(w, http.StatusOK, stateView(state))
}

// State returns the wizard's current position
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	state, err := h.checkoutService.CurrentState(sess)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "checkout not started")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, stateView(state))
}

// Abandon drops the in-flight wizard
func (h *CheckoutHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	h.checkoutService.Abandon(sess)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "checkout abandoned"})
}

// SubmitShipping validates and submits the step-1 shipping form
func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	var details checkout.ShippingDetails
	if err := middleware.DecodeAndValidate(r, &details); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.checkoutService.SubmitShipping(sess, details); err != nil {
		h.respondStepError(w, err)
		return
	}

	state, _ := h.checkoutService.CurrentState(sess)
	middleware.RespondWithJSON(w, http.StatusOK, stateView(state))
}

// SubmitPayment validates and submits the step-2 payment form
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	var details checkout.PaymentDetails
	if err := middleware.DecodeAndValidate(r, &details); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.checkoutService.SubmitPayment(sess, details); err != nil {
		h.respondStepError(w, err)
		return
	}

	state, _ := h.checkoutService.CurrentState(sess)
	middleware.RespondWithJSON(w, http.StatusOK, stateView(state))
}

// Back steps the wizard backwards, keeping entered data
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	if err := h.checkoutService.Back(sess); err != nil {
		h.respondStepError(w, err)
		return
	}

	state, _ := h.checkoutService.CurrentState(sess)
	middleware.RespondWithJSON(w, http.StatusOK, stateView(state))
}

// UploadReceipt accepts a multipart bank-transfer receipt and returns the
// stored URL for use in the payment form
func (h *CheckoutHandler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptSize)
	file, header, err := r.FormFile("receipt")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing receipt file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, err := h.checkoutService.UploadReceipt(r.Context(), sess, header.Filename, contentType, file)
	if err != nil {
		h.logger.Error("Receipt upload failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to upload receipt")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"receipt_url": url})
}

// Summary returns the review-step order summary
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	summary, err := h.checkoutService.Summary(sess)
	if err != nil {
		h.respondStepError(w, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, summary)
}

// PlaceOrder performs the final Review → OrderPlaced transition
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.checkoutService.PlaceOrder(r.Context(), sess, req.IdempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutNotStarted):
			middleware.RespondWithError(w, http.StatusConflict, "checkout not started")
		case errors.Is(err, checkout.ErrOrderNotReady):
			middleware.RespondWithError(w, http.StatusConflict, "checkout is not on the review step")
		case errors.Is(err, service.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusConflict, "cart is empty")
		default:
			h.logger.Error("Order placement failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusBadGateway, "failed to place order")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) respondStepError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCheckoutNotStarted):
		middleware.RespondWithError(w, http.StatusConflict, "checkout not started")
	case errors.Is(err, checkout.ErrInvalidTransition):
		middleware.RespondWithError(w, http.StatusConflict, "invalid checkout step")
	case errors.Is(err, checkout.ErrOrderNotReady):
		middleware.RespondWithError(w, http.StatusConflict, "checkout is not ready")
	case errors.As(err, &validationErrors):
		middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(validationErrors))
	default:
		h.logger.Error("Checkout step failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "checkout step failed")
	}
}

func stateView(state checkout.State) CheckoutStateView {
	return CheckoutStateView{
		State: state.String(),
		Step:  state.StepNumber(),
	}
}
