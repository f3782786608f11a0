package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"Agora/internal/api/middleware"
	"Agora/internal/config"
	"Agora/internal/core/identity"
	"Agora/internal/core/users"
	postgresRepo "Agora/internal/db/postgres"
)

// gentoken mints an HS256 bearer token for local development, signed with
// JWT_SECRET from the environment (or .env).
//
// Usage:
//
//	go run ./cmd/gentoken -id u1 -name "Ann" -username ann
//	go run ./cmd/gentoken -id u1 -username ann -db
//
// With -db the user is also upserted into the directory at DATABASE_URL so
// profile lookups and display-name fallback have something to read.
func main() {
	id := flag.String("id", "", "user id (required)")
	name := flag.String("name", "", "display name carried in the token")
	username := flag.String("username", "", "username carried in the token")
	email := flag.String("email", "", "email stored with -db")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	seed := flag.Bool("db", false, "upsert the user into the database")
	flag.Parse()

	if strings.TrimSpace(*id) == "" {
		log.Fatal("-id is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	caller := &identity.Caller{ID: *id, DisplayName: *name, Username: *username}

	if *seed {
		if cfg.UsesMemoryStore() {
			log.Fatal("-db needs a PostgreSQL DATABASE_URL")
		}
		if err := seedUser(cfg.DatabaseURL, caller, *email); err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}
		log.Printf("Upserted user %s", *id)
	}

	token, err := middleware.IssueToken(cfg.JWTSecret, caller, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
}

func seedUser(dbURL string, caller *identity.Caller, email string) error {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	username := caller.Username
	if username == "" {
		username = caller.ID
	}

	return postgresRepo.NewUserRepository(db).Upsert(ctx, &users.User{
		ID:          caller.ID,
		DisplayName: caller.DisplayName,
		Username:    username,
		Email:       email,
	})
}
