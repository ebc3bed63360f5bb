package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/config"
	"github.com/nojast/nojast-api/internal/domain/auth"
	"github.com/nojast/nojast-api/internal/domain/banner"
	"github.com/nojast/nojast-api/internal/domain/comment"
	"github.com/nojast/nojast-api/internal/domain/contact"
	"github.com/nojast/nojast-api/internal/domain/moderation"
	"github.com/nojast/nojast-api/internal/domain/notification"
	"github.com/nojast/nojast-api/internal/domain/product"
	"github.com/nojast/nojast-api/internal/domain/upload"
	"github.com/nojast/nojast-api/internal/domain/user"
	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/database"
	"github.com/nojast/nojast-api/internal/pkg/imaging"
	"github.com/nojast/nojast-api/internal/pkg/jwt"
	"github.com/nojast/nojast-api/internal/pkg/logger"
	"github.com/nojast/nojast-api/internal/pkg/ratelimit"
	pkgresponse "github.com/nojast/nojast-api/internal/pkg/response"
	"github.com/nojast/nojast-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Nojast API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	var fileStorage storage.Storage
	if cfg.R2AccountID != "" {
		r2, err := storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create R2 storage")
		}
		fileStorage = r2
	} else if cfg.UploadDir != "" {
		local, err := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
		fileStorage = local
		log.Warn().Str("dir", cfg.UploadDir).Msg("Using local file storage")
	} else {
		log.Warn().Msg("No storage configured, image uploads disabled")
	}

	var limiter ratelimit.Limiter
	if redis != nil {
		limiter = ratelimit.NewRedisLimiter(redis, cfg.RateLimitMax, cfg.RateLimitWindow)
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	productRepo := product.NewRepository(db)
	commentRepo := comment.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	moderationRepo := moderation.NewRepository(db, notificationRepo)
	bannerRepo := banner.NewRepository(db)
	contactRepo := contact.NewRepository(db)

	// ---------- Realtime hub ----------
	hub := notification.NewHub(redis)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redis, cfg.JWTRefreshTTL)
	notificationService := notification.NewService(notificationRepo, hub)
	productService := product.NewService(productRepo, notificationService)
	commentService := comment.NewService(commentRepo, productRepo, notificationService)
	moderationService := moderation.NewService(moderationRepo, productRepo, commentRepo, notificationService)
	bannerService := banner.NewService(bannerRepo)

	// ---------- Background jobs ----------
	jobCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	cleanup := notification.NewCleanupJob(notificationRepo, cfg.NotificationRetention)
	go cleanup.Start(jobCtx, 24*time.Hour)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userRepo)
	productHandler := product.NewHandler(productService)
	commentHandler := comment.NewHandler(commentService)
	notificationHandler := notification.NewHandler(notificationService, hub, jwtService)
	moderationHandler := moderation.NewHandler(moderationService)
	bannerHandler := banner.NewHandler(bannerService)
	contactHandler := contact.NewHandler(contactRepo)
	uploadHandler := upload.NewHandler(fileStorage, imaging.NewProcessor(imaging.DefaultConfig()))

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.OptionalAuth(jwtService))
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.Admission())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// Reachable by any authenticated user, admin or not. Used by the
	// frontend to probe the admission rules.
	r.Get("/admin/debug/admin-test", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]interface{}{
			"user_id": middleware.GetUserID(r.Context()),
			"role":    middleware.GetRole(r.Context()),
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/users", userHandler.Routes(authMiddleware))

		r.Route("/products", func(r chi.Router) {
			product.Routes(r, productHandler, jwtService)
			comment.ProductRoutes(r, commentHandler, jwtService)
		})
		r.Route("/comments", func(r chi.Router) {
			comment.Routes(r, commentHandler, jwtService)
		})
		r.Route("/notifications", func(r chi.Router) {
			notification.Routes(r, notificationHandler, jwtService)
		})
		r.Route("/banners", func(r chi.Router) {
			banner.Routes(r, bannerHandler)
		})
		r.Route("/contact", func(r chi.Router) {
			contact.Routes(r, contactHandler)
		})
		r.Route("/uploads", func(r chi.Router) {
			upload.Routes(r, uploadHandler, jwtService)
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin())

		r.Route("/moderation", func(r chi.Router) {
			moderation.Routes(r, moderationHandler)
		})
		r.Route("/banners", func(r chi.Router) {
			banner.AdminRoutes(r, bannerHandler)
		})
		r.Route("/messages", func(r chi.Router) {
			contact.AdminRoutes(r, contactHandler)
		})
		r.Mount("/users", userHandler.AdminRoutes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
