package postgres

import (
	"Agora/internal/core/posts"
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post into the posts table
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (
			id, author_id, display_name_public, is_anonymous,
			content, image_urls, visibility,
			likes_count, comments_count, deleted,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, FALSE,
			$10, $11
		)`

	imageURLs := post.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.AuthorID, post.DisplayNamePublic, post.IsAnonymous,
		post.Content, pq.Array(imageURLs), string(post.Visibility),
		post.LikesCount, post.CommentsCount,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by id, including soft-deleted posts
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	if !validUUID(id) {
		return nil, posts.ErrNotFound
	}

	query := `
		SELECT
			id, author_id, display_name_public, is_anonymous,
			content, image_urls, visibility,
			likes_count, comments_count, deleted,
			created_at, updated_at
		FROM posts
		WHERE id = $1`

	var post posts.Post
	var imageURLs pq.StringArray
	var visibility string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.DisplayNamePublic, &post.IsAnonymous,
		&post.Content, &imageURLs, &visibility,
		&post.LikesCount, &post.CommentsCount, &post.Deleted,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.ImageURLs = []string(imageURLs)
	post.Visibility = posts.Visibility(visibility)
	return &post, nil
}

// SoftDelete marks a live post deleted
func (r *postgresPostRepo) SoftDelete(ctx context.Context, id string) error {
	if !validUUID(id) {
		return posts.ErrNotFound
	}

	query := `
		UPDATE posts
		SET deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}
	return nil
}
