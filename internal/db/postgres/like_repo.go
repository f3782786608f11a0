package postgres

import (
	"Agora/internal/core/likes"
	"context"
	"database/sql"
	"fmt"
)

type postgresLikeRepo struct {
	db *sql.DB
}

// NewLikeRepository creates a new PostgreSQL like repository
func NewLikeRepository(db *sql.DB) likes.Repository {
	return &postgresLikeRepo{db: db}
}

// Create inserts a like into the ledger.
// The (post_id, user_id) unique constraint turns a lost race into
// ErrAlreadyLiked.
func (r *postgresLikeRepo) Create(ctx context.Context, like *likes.Like) error {
	query := `
		INSERT INTO likes (post_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, like.PostID, like.UserID, like.CreatedAt).
		Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return likes.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// GetByPostAndUser retrieves a user's like on a post
func (r *postgresLikeRepo) GetByPostAndUser(ctx context.Context, postID, userID string) (*likes.Like, error) {
	if !validUUID(postID) {
		return nil, likes.ErrLikeNotFound
	}

	query := `
		SELECT id, post_id, user_id, created_at
		FROM likes
		WHERE post_id = $1 AND user_id = $2`

	var like likes.Like
	err := r.db.QueryRowContext(ctx, query, postID, userID).
		Scan(&like.ID, &like.PostID, &like.UserID, &like.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, likes.ErrLikeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return &like, nil
}

// Delete removes a user's like on a post
func (r *postgresLikeRepo) Delete(ctx context.Context, postID, userID string) (bool, error) {
	if !validUUID(postID) {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return rowsAffected > 0, nil
}

// CountByPost counts the likes recorded for a post
func (r *postgresLikeRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	if !validUUID(postID) {
		return 0, nil
	}

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return n, nil
}
