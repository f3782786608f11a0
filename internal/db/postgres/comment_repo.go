package postgres

import (
	"Agora/internal/core/comments"
	"context"
	"database/sql"
	"fmt"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create inserts a comment and reads back its seq
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq`

	err := r.db.QueryRowContext(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Content, comment.CreatedAt,
	).Scan(&comment.Seq)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by id
func (r *postgresCommentRepo) GetByID(ctx context.Context, id string) (*comments.Comment, error) {
	if !validUUID(id) {
		return nil, comments.ErrCommentNotFound
	}

	query := `
		SELECT id, seq, post_id, user_id, content, created_at
		FROM comments
		WHERE id = $1`

	var c comments.Comment
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Seq, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &c, nil
}

// Delete hard-deletes a comment
func (r *postgresCommentRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !validUUID(id) {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return rowsAffected > 0, nil
}

// ListByPost lists a post's comments, newest first
func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	if !validUUID(postID) {
		return []*comments.Comment{}, nil
	}

	query := `
		SELECT id, seq, post_id, user_id, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC, seq DESC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*comments.Comment{}
	for rows.Next() {
		var c comments.Comment
		if err := rows.Scan(&c.ID, &c.Seq, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return result, nil
}

// CountByPost counts the comments of a post
func (r *postgresCommentRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	if !validUUID(postID) {
		return 0, nil
	}

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return n, nil
}
