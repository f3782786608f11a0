package postgres

import (
	"Agora/internal/core/counters"
	"context"
	"database/sql"
	"fmt"
)

type postgresCounterStore struct {
	db *sql.DB
}

// NewCounterStore creates the PostgreSQL store behind counters.Reconciler
func NewCounterStore(db *sql.DB) counters.Store {
	return &postgresCounterStore{db: db}
}

// adjustQueries holds one statement per counter column so the column name
// never comes from input
var adjustQueries = map[counters.Field]string{
	counters.Likes: `
		UPDATE posts
		SET likes_count = GREATEST(0, likes_count + $2), updated_at = NOW()
		WHERE id = $1
		RETURNING likes_count`,
	counters.Comments: `
		UPDATE posts
		SET comments_count = GREATEST(0, comments_count + $2), updated_at = NOW()
		WHERE id = $1
		RETURNING comments_count`,
}

// AdjustCounter applies delta in a single atomic statement
func (s *postgresCounterStore) AdjustCounter(ctx context.Context, postID string, field counters.Field, delta int) (int, error) {
	query, ok := adjustQueries[field]
	if !ok {
		return 0, counters.ErrUnknownField
	}
	if !validUUID(postID) {
		return 0, counters.ErrPostNotFound
	}

	var count int
	err := s.db.QueryRowContext(ctx, query, postID, delta).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, counters.ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust %s: %w", field, err)
	}
	return count, nil
}

// RecountCounters recomputes both counters from the likes and comments tables
func (s *postgresCounterStore) RecountCounters(ctx context.Context, postID string) (*counters.Counts, error) {
	if !validUUID(postID) {
		return nil, counters.ErrPostNotFound
	}

	query := `
		UPDATE posts p
		SET
			likes_count = (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
			comments_count = (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
		WHERE p.id = $1
		RETURNING p.id, p.likes_count, p.comments_count`

	var counts counters.Counts
	err := s.db.QueryRowContext(ctx, query, postID).
		Scan(&counts.PostID, &counts.LikesCount, &counts.CommentsCount)
	if err == sql.ErrNoRows {
		return nil, counters.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to recount post counters: %w", err)
	}
	return &counts, nil
}

// ListPostIDs returns every post id, oldest first
func (s *postgresCounterStore) ListPostIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM posts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan post id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return ids, nil
}
