package transport

import (
	"errors"
	"net/http"

	"naira-store/internal/middleware"
	"naira-store/internal/repository"
	"naira-store/internal/service"
	"naira-store/internal/session"
	"naira-store/internal/sidestore"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoritesHandler handles HTTP requests for the favorites and compare lists
type FavoritesHandler struct {
	favoritesService service.FavoritesService
	sessions         *session.Manager
	logger           *zap.Logger
}

// NewFavoritesHandler creates a new FavoritesHandler
func NewFavoritesHandler(favoritesService service.FavoritesService, sessions *session.Manager, logger *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesService: favoritesService,
		sessions:         sessions,
		logger:           logger,
	}
}

// RegisterRoutes registers favorites and compare routes
func (h *FavoritesHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/favorites", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListFavorites)
		r.Put("/{productID}", h.AddFavorite)
		r.Delete("/{productID}", h.RemoveFavorite)
	})
	r.Route("/api/compare", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListCompare)
		r.Put("/{productID}", h.AddCompare)
		r.Delete("/{productID}", h.RemoveCompare)
	})
}

// ListFavorites returns the session's favorited products
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, h.favoritesService.Favorites(sess))
}

// AddFavorite adds a product to the favorites set; adding twice is a no-op
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if _, err := h.favoritesService.AddFavorite(r.Context(), sess, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to add favorite", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add favorite")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.favoritesService.Favorites(sess))
}

// RemoveFavorite removes a product from the favorites set
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	h.favoritesService.RemoveFavorite(r.Context(), sess, productID)
	middleware.RespondWithJSON(w, http.StatusOK, h.favoritesService.Favorites(sess))
}

// ListCompare returns the compared products in insertion order
func (h *FavoritesHandler) ListCompare(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, h.favoritesService.Compare(sess))
}

// AddCompare adds a product to the compare list. At capacity the add is
// rejected with 409 and nothing is evicted; the client surfaces the message.
func (h *FavoritesHandler) AddCompare(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.favoritesService.AddCompare(r.Context(), sess, productID); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, sidestore.ErrCompareLimitReached):
			middleware.RespondWithError(w, http.StatusConflict, "you can only compare up to 3 products")
		default:
			h.logger.Error("Failed to add to compare", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add to compare")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.favoritesService.Compare(sess))
}

// RemoveCompare removes a product from the compare list
func (h *FavoritesHandler) RemoveCompare(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.sessions)
	if !ok {
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	h.favoritesService.RemoveCompare(sess, productID)
	middleware.RespondWithJSON(w, http.StatusOK, h.favoritesService.Compare(sess))
}
