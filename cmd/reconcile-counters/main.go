// cmd/reconcile-counters/main.go
// Recomputes likesCount and commentsCount for every post from the like
// ledger and the comment table. Run it after a counter write failed
// following a successful ledger write.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"Agora/internal/config"
	"Agora/internal/core/counters"
	postgresRepo "Agora/internal/db/postgres"
	"Agora/internal/logging"
)

func main() {
	postID := flag.String("post", "", "recount a single post instead of all posts")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.Init(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	if cfg.UsesMemoryStore() {
		logger.Error("reconcile-counters needs a PostgreSQL DATABASE_URL")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	reconciler := counters.NewReconciler(postgresRepo.NewCounterStore(db), logger)

	if *postID != "" {
		counts, err := reconciler.Recount(ctx, *postID)
		if err != nil {
			logger.Error("recount failed", "post_id", *postID, "error", err)
			os.Exit(1)
		}
		logger.Info("recounted post",
			"post_id", counts.PostID,
			"likes_count", counts.LikesCount,
			"comments_count", counts.CommentsCount)
		return
	}

	start := time.Now()
	n, err := reconciler.RecountAll(ctx)
	if err != nil {
		logger.Error("recount stopped", "recounted", n, "error", err)
		os.Exit(1)
	}
	logger.Info("recounted all posts", "posts", n, "duration", time.Since(start))
}
