package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"naira-store/internal/config"
	custommiddleware "naira-store/internal/middleware"
	"naira-store/internal/pricing"
	"naira-store/internal/repository"
	"naira-store/internal/service"
	"naira-store/internal/session"
	"naira-store/internal/storage"
	"naira-store/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger, db *sql.DB) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	// Redis client, used for rate limiting
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 300,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit",
	}, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Object storage for receipts and category images
	uploader, err := storage.NewS3Storage(ctx, cfg.Storage.Region, cfg.Storage.PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// Pricing constants
	vatRate, freeShippingThreshold, baseShippingCost := cfg.PricingValues()
	pricingCfg := pricing.Config{
		VATRate:               vatRate,
		FreeShippingThreshold: freeShippingThreshold,
		BaseShippingCost:      baseShippingCost,
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bannerRepo := repository.NewBannerRepository(db)

	// Per-user in-memory sessions, hydrated from the repositories at sign-in
	sessions := session.NewManager(cfg.Pricing.CompareLimit, favoriteRepo, cartRepo, logger)

	// Initialize services
	userService := service.NewUserService(userRepo, refreshTokenRepo, sessions, cfg.JWT.Secret)
	cartService := service.NewCartService(productRepo, cartRepo, pricingCfg, logger)
	favoritesService := service.NewFavoritesService(productRepo, favoriteRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, cartRepo, uploader, pricingCfg, logger)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, uploader)
	reviewService := service.NewReviewService(reviewRepo, productRepo, userRepo, logger)
	orderService := service.NewOrderService(orderRepo)

	// Banner service validates the stored catalog against the icon registry
	// at startup.
	bannerService, err := service.NewBannerService(ctx, bannerRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize banner service: %w", err)
	}

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, logger)
	cartHandler := transport.NewCartHandler(cartService, sessions, logger)
	favoritesHandler := transport.NewFavoritesHandler(favoritesService, sessions, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkoutService, sessions, logger)
	catalogHandler := transport.NewCatalogHandler(catalogService, reviewService, logger)
	reviewHandler := transport.NewReviewHandler(reviewService, logger)
	bannerHandler := transport.NewBannerHandler(bannerService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)

	// Create middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)

	// Register routes
	userHandler.RegisterRoutes(router, authMiddleware)
	cartHandler.RegisterRoutes(router, authMiddleware)
	favoritesHandler.RegisterRoutes(router, authMiddleware)
	checkoutHandler.RegisterRoutes(router, authMiddleware)
	catalogHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	reviewHandler.RegisterRoutes(router, authMiddleware)
	bannerHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	orderHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
