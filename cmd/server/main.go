package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"Chatty/internal/api/middleware"
	"Chatty/internal/api/routes"
	"Chatty/internal/config"
	"Chatty/internal/core/content"
	"Chatty/internal/core/feed"
	"Chatty/internal/core/graph"
	"Chatty/internal/core/identity"
	postgresRepo "Chatty/internal/db/postgres"
	"Chatty/internal/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	logger.Info("connected to subscription database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}
	if err := goose.Up(db, "internal/db/migrations"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	logger.Info("migrations completed")

	// Identity resolution: local HS256 verification when the shared secret
	// is configured, otherwise a remote check per request, both behind a
	// positive-result cache
	var resolver identity.Resolver
	if cfg.JWTSecret != "" {
		resolver = identity.NewJWTResolver(cfg.JWTSecret)
	} else {
		resolver = identity.NewHTTPResolver(cfg.AuthServiceURL, cfg.AuthTimeout)
	}
	resolver = identity.NewCachingResolver(resolver, cfg.IdentityCache, cfg.IdentityTTL)

	// Core components
	auditRepo := postgresRepo.NewAuditRepository(db)
	graphRepo := postgresRepo.NewGraphRepository(db)
	graphService := graph.NewGraphService(graphRepo, auditRepo, logger)

	fetcher := content.NewHTTPFetcher(cfg.PostServiceURL, cfg.ContentTimeout)
	feedCache := feed.NewCache(cfg.FeedTTL, cfg.EmptyFeedTTL, logger)
	feedService := feed.NewFeedService(graphService, fetcher, feedCache, cfg.FanoutBatch, logger)

	// Notification pipeline: websocket connector -> queue -> consumer
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := events.NewQueue(1024)
	consumer := events.NewConsumer(queue, feedService, logger)
	connector := events.NewConnector(cfg.EventStreamURL, queue, logger)

	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("notification consumer stopped", "error", err)
		}
	}()
	go func() {
		if err := connector.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("notification connector stopped", "error", err)
		}
	}()

	// HTTP surface
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	r.Use(rateLimiter.Middleware)

	authMiddleware := middleware.NewAuthMiddleware(resolver, logger)
	routes.RegisterSubscriptionRoutes(r, graphService, feedService, fetcher, authMiddleware)
	routes.RegisterAdminRoutes(r, auditRepo, authMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("subscription service starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed:", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
}
