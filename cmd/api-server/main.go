package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"cigarrank/database"
	"cigarrank/internal/api/handler"
	"cigarrank/internal/api/middleware"
	"cigarrank/internal/api/repository"
	"cigarrank/internal/api/service"
	"cigarrank/internal/cache"
	"cigarrank/internal/config"
	"cigarrank/internal/stores"
	"cigarrank/internal/vision"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.SeedCigars(db, logger); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	// Redis is best effort; without it every price request just scrapes
	priceCache, err := cache.NewPriceCache(cfg.RedisAddr, cfg.RedisPassword, cfg.PriceCacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, price caching disabled", "error", err)
		priceCache = nil
	} else {
		defer priceCache.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cigarRepo := repository.NewCigarRepo(db)
	ratingRepo := repository.NewRatingRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// External clients
	visionClient := vision.NewClient(cfg.VisionAPIURL, cfg.VisionAPIKey, cfg.VisionModel)
	scraper := stores.NewScraper(cfg.ScrapeTimeout)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	cigarService := service.NewCigarService(cigarRepo, visionClient, logger)
	ratingService := service.NewRatingService(ratingRepo, cigarRepo)
	commentService := service.NewCommentService(commentRepo, cigarRepo, userRepo)
	noteService := service.NewNoteService(noteRepo, cigarRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, cigarRepo)
	storeService := service.NewStoreService(cigarRepo, scraper, priceCache, cfg.ScrapeTimeout, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, favoriteService)
	cigarHandler := handler.NewCigarHandler(cigarService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	commentHandler := handler.NewCommentHandler(commentService)
	noteHandler := handler.NewNoteHandler(noteService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	storeHandler := handler.NewStoreHandler(storeService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	authRequired := middleware.AuthMiddleware(authService)

	// Vision calls are expensive, so the scan endpoint gets its own limiter
	scanLimiter := middleware.RateLimit(rate.Limit(0.2), 3)

	authHandler.RegisterRoutes(api.Group("/auth"), api.Group("/auth", authRequired))
	cigarHandler.RegisterRoutes(api.Group("/cigars"), api.Group("/cigars", authRequired), scanLimiter)
	ratingHandler.RegisterRoutes(api.Group("/ratings"), api.Group("/ratings", authRequired))
	commentHandler.RegisterRoutes(api.Group("/comments"), api.Group("/comments", authRequired))
	noteHandler.RegisterRoutes(api.Group("/notes", authRequired))
	favoriteHandler.RegisterRoutes(api.Group("/favorites", authRequired))
	storeHandler.RegisterRoutes(api.Group("/stores"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
