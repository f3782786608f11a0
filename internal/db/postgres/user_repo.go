package postgres

import (
	"Agora/internal/core/users"
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

const userColumns = `id, username, display_name, email, photo_url, bio, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*users.User, error) {
	user := &users.User{}
	var photoURL sql.NullString
	err := row.Scan(&user.ID, &user.Username, &user.DisplayName, &user.Email,
		&photoURL, &user.Bio, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if photoURL.Valid {
		user.PhotoURL = &photoURL.String
	}
	return user, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by case-insensitive username
func (r *postgresUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(username))))
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// Upsert inserts a user or refreshes the profile fields of an existing one
func (r *postgresUserRepo) Upsert(ctx context.Context, user *users.User) error {
	query := `
		INSERT INTO users (id, username, display_name, email, photo_url, bio)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			photo_url = EXCLUDED.photo_url,
			bio = EXCLUDED.bio,
			updated_at = NOW()
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.DisplayName, user.Email, user.PhotoURL, user.Bio,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q already taken: %w", user.Username, err)
		}
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}
