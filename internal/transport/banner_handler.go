package transport

import (
	"errors"
	"net/http"

	"naira-store/internal/middleware"
	"naira-store/internal/repository"
	"naira-store/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BannerRequest represents the banner create/update payload
type BannerRequest struct {
	Message   string `json:"message" validate:"required,max=200"`
	IconName  string `json:"icon_name" validate:"required"`
	Active    bool   `json:"active"`
	SortOrder int    `json:"sort_order"`
}

// BannerHandler handles HTTP requests for delivery banners
type BannerHandler struct {
	bannerService service.BannerService
	logger        *zap.Logger
}

// NewBannerHandler creates a new BannerHandler
func NewBannerHandler(bannerService service.BannerService, logger *zap.Logger) *BannerHandler {
	return &BannerHandler{
		bannerService: bannerService,
		logger:        logger,
	}
}

// RegisterRoutes registers banner routes. The active rotation is public;
// management is admin-only.
func (h *BannerHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/banners", func(r chi.Router) {
		r.Get("/", h.ListActive)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware, adminMiddleware)
			r.Get("/all", h.ListAll)
			r.Post("/", h.Create)
			r.Put("/{bannerID}", h.Update)
			r.Delete("/{bannerID}", h.Delete)
		})
	})
}

// ListActive returns the banners currently in rotation
func (h *BannerHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bannerService.ActiveBanners(r.Context())
	if err != nil {
		h.logger.Error("Failed to list active banners", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list banners")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, banners)
}

// ListAll returns every banner, active or not
func (h *BannerHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bannerService.AllBanners(r.Context())
	if err != nil {
		h.logger.Error("Failed to list banners", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list banners")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, banners)
}

// Create stores a new banner
func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BannerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	banner, err := h.bannerService.CreateBanner(r.Context(), req.Message, req.IconName, req.SortOrder)
	if err != nil {
		if errors.Is(err, service.ErrUnknownIcon) {
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown icon name")
			return
		}
		h.logger.Error("Failed to create banner", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create banner")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, banner)
}

// Update applies the writable fields to a banner
func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bannerID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid banner ID")
		return
	}

	var req BannerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	banner, err := h.bannerService.UpdateBanner(r.Context(), id, req.Message, req.IconName, req.Active, req.SortOrder)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownIcon):
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown icon name")
		case errors.Is(err, repository.ErrBannerNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "banner not found")
		default:
			h.logger.Error("Failed to update banner", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update banner")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, banner)
}

// Delete removes a banner
func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bannerID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid banner ID")
		return
	}

	if err := h.bannerService.DeleteBanner(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "banner not found")
			return
		}
		h.logger.Error("Failed to delete banner", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete banner")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "banner deleted"})
}
