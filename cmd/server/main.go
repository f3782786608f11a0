package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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

	"Agora/internal/api/middleware"
	"Agora/internal/api/routes"
	"Agora/internal/config"
	"Agora/internal/core/comments"
	"Agora/internal/core/counters"
	"Agora/internal/core/likes"
	"Agora/internal/core/posts"
	"Agora/internal/core/users"
	"Agora/internal/db/memory"
	"Agora/internal/db/migrations"
	postgresRepo "Agora/internal/db/postgres"
	"Agora/internal/events"
	"Agora/internal/logging"
	"Agora/internal/metrics"
)

type repositories struct {
	posts    posts.Repository
	likes    likes.Repository
	comments comments.Repository
	users    users.UserRepository
	counters counters.Store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger, err := logging.Init(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logging: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeDB, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	publisher := events.Publisher(events.NopPublisher{})
	if cfg.NATSURL != "" {
		conn, err := events.ConnectNATS(cfg.NATSURL, logger)
		if err != nil {
			logger.Warn("NATS unavailable, domain events disabled", "error", err)
		} else {
			defer conn.Close()
			publisher = events.NewNATSPublisher(conn, cfg.NATSSubjectPrefix)
			logger.Info("publishing domain events to NATS", "url", cfg.NATSURL)
		}
	}

	var rateLimitStore middleware.RateLimitStore
	if cfg.RedisURL != "" {
		client, err := middleware.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer func() { _ = client.Close() }()
			rateLimitStore = middleware.NewRedisRateLimitStore(client)
		}
	}
	if rateLimitStore == nil {
		rateLimitStore = middleware.NewMemoryRateLimitStore(cfg.RateLimitWindow)
	}

	// Initialize services
	reconciler := counters.NewReconciler(repos.counters, logger)
	userRepo := users.NewCachingRepository(repos.users, cfg.UserCacheSize, logger)
	userService := users.NewUserService(userRepo, logger)
	postService := posts.NewPostService(repos.posts, userService, publisher, posts.Config{
		MediaBaseURL: cfg.MediaBaseURL,
	}, logger)
	likeService := likes.NewService(repos.likes, repos.posts, reconciler, publisher, logger)
	commentService := comments.NewCommentService(repos.comments, repos.posts, reconciler, publisher, logger)

	authMiddleware := middleware.NewJWTAuthMiddleware(cfg.JWTSecret, logger)
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, cfg.RateLimitRequests, cfg.RateLimitWindow, logger)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metrics.Instrument)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.OptionalAuth)
		r.Use(rateLimiter.Middleware)

		routes.RegisterPostRoutes(r, postService, authMiddleware)
		routes.RegisterLikeRoutes(r, likeService, authMiddleware)
		routes.RegisterCommentRoutes(r, commentService, authMiddleware)
		routes.RegisterUserRoutes(r, userService, authMiddleware)
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("Agora API starting", "addr", server.Addr, "memory_store", cfg.UsesMemoryStore())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// openRepositories connects to PostgreSQL and runs migrations, or builds
// the in-process store when DATABASE_URL=memory
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, func(), error) {
	if cfg.UsesMemoryStore() {
		logger.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			posts:    store.Posts(),
			likes:    store.Likes(),
			comments: store.Comments(),
			users:    store.Users(),
			counters: store,
		}, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeDB := func() { _ = db.Close() }

	if err := db.PingContext(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("connected to database")

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, migrations.Dir); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("migrations completed successfully")

	return &repositories{
		posts:    postgresRepo.NewPostRepository(db),
		likes:    postgresRepo.NewLikeRepository(db),
		comments: postgresRepo.NewCommentRepository(db),
		users:    postgresRepo.NewUserRepository(db),
		counters: postgresRepo.NewCounterStore(db),
	}, closeDB, nil
}
