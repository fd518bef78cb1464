package transport

import (
	"errors"
	"net/http"

	"naira-store/internal/domain"
	"naira-store/internal/middleware"
	"naira-store/internal/pricing"
	"naira-store/internal/repository"
	"naira-store/internal/service"
	"naira-store/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart request payload
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// SetQuantityRequest represents the quantity update request payload
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// CartLineView is one cart line in responses
type CartLineView struct {
	Product   domain.Product `json:"product"`
	Quantity  int            `json:"quantity"`
	LineTotal string         `json:"line_total"`
}

// CartView is the full cart in responses: the lines plus the derived totals,
// both raw and formatted for display
type CartView struct {
	Lines   []CartLineView          `json:"lines"`
	Totals  pricing.Totals          `json:"totals"`
	Display pricing.FormattedTotals `json:"display"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cartService service.CartService
	sessions    *session.Manager
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, sessions *session.Manager, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		sessions:    sessions,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.SetQuantity)
		r.Delete("/items/{productID}", h.RemoveItem)
	})
}

// GetCart returns the session cart with derived totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cartView(sess))
}

// AddItem adds a product to the cart, merging with an existing line
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	// The response reflects the local store; the backend write settles in
	// the background.
	_, _, err = h.cartService.AddItem(r.Context(), sess, productID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to add cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cartView(sess))
}

// SetQuantity updates the quantity of an existing cart line
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req SetQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, _, err = h.cartService.SetQuantity(r.Context(), sess, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "item not in cart")
			return
		}
		h.logger.Error("Failed to update cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cartView(sess))
}

// RemoveItem removes a cart line; removing an absent line is a no-op
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	h.cartService.RemoveItem(r.Context(), sess, productID)

	middleware.RespondWithJSON(w, http.StatusOK, h.cartView(sess))
}

func (h *CartHandler) cartView(sess *session.Session) CartView {
	lines := h.cartService.Lines(sess)
	totals := h.cartService.Totals(sess)

	views := make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, CartLineView{
			Product:   line.Product,
			Quantity:  line.Quantity,
			LineTotal: pricing.FormatNGN(line.LineTotal()),
		})
	}

	return CartView{
		Lines:   views,
		Totals:  totals,
		Display: totals.Format(),
	}
}
