// Package counters keeps a post's denormalized likesCount and commentsCount
// in step with the like ledger and the comment table.
//
// Every adjustment is a single atomic read-modify-write in the store,
// floored at zero, so concurrent likes and comments cannot lose updates.
// Ledger and counter writes are separate statements: when the counter write
// fails after the ledger write succeeded, the error is logged and returned,
// and Recount repairs the drift later.
package counters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Agora/internal/core/errs"
	"Agora/internal/metrics"
)

// Field names a denormalized counter column on a post
type Field string

const (
	Likes    Field = "likes_count"
	Comments Field = "comments_count"
)

// ErrPostNotFound is returned when the counter row does not exist
var ErrPostNotFound = errs.NotFound("Post not found")

// ErrUnknownField guards against adjusting an arbitrary column
var ErrUnknownField = errors.New("unknown counter field")

// Counts is a snapshot of both counters of a post
type Counts struct {
	PostID        string `json:"postId"`
	LikesCount    int    `json:"likesCount"`
	CommentsCount int    `json:"commentsCount"`
}

// Store applies counter changes atomically
type Store interface {
	// AdjustCounter adds delta to field and clamps the result at 0 in one
	// statement, returning the new value.
	// Returns ErrPostNotFound if the post row does not exist.
	AdjustCounter(ctx context.Context, postID string, field Field, delta int) (int, error)

	// RecountCounters recomputes both counters from the like ledger and the
	// comment table and stores them on the post.
	RecountCounters(ctx context.Context, postID string) (*Counts, error)

	// ListPostIDs returns the ids of every post, deleted ones included.
	// Used by full reconciliation runs.
	ListPostIDs(ctx context.Context) ([]string, error)
}

// Reconciler applies the counter rules for the like and comment services
type Reconciler struct {
	store  Store
	logger *slog.Logger
}

// NewReconciler creates a new counter reconciler
func NewReconciler(store Store, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{store: store, logger: logger}
}

// Increment adds one to field and returns the new count
func (r *Reconciler) Increment(ctx context.Context, postID string, field Field) (int, error) {
	return r.Apply(ctx, postID, field, 1)
}

// Decrement subtracts one from field, never going below zero
func (r *Reconciler) Decrement(ctx context.Context, postID string, field Field) (int, error) {
	return r.Apply(ctx, postID, field, -1)
}

// Apply adds delta to field in one atomic statement, floored at zero
func (r *Reconciler) Apply(ctx context.Context, postID string, field Field, delta int) (int, error) {
	if field != Likes && field != Comments {
		return 0, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	count, err := r.store.AdjustCounter(ctx, postID, field, delta)
	if err != nil {
		metrics.CounterWriteFailures.WithLabelValues(string(field)).Inc()
		// The ledger write already happened and is not rolled back
		r.logger.Error("counter write failed after ledger write, counter may drift",
			"error", err,
			"post_id", postID,
			"field", field,
			"delta", delta)
		if errors.Is(err, ErrPostNotFound) {
			return 0, ErrPostNotFound
		}
		return 0, errs.Internal("failed to update post counter", err)
	}

	metrics.CounterAdjustments.WithLabelValues(string(field), direction(delta)).Inc()
	return count, nil
}

// Recount recomputes both counters of a post from the source records
func (r *Reconciler) Recount(ctx context.Context, postID string) (*Counts, error) {
	counts, err := r.store.RecountCounters(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, errs.Internal("failed to recount post counters", err)
	}
	return counts, nil
}

// RecountAll recomputes the counters of every post. Failures on a single
// post are logged and skipped; the number of repaired posts is returned.
func (r *Reconciler) RecountAll(ctx context.Context) (int, error) {
	ids, err := r.store.ListPostIDs(ctx)
	if err != nil {
		return 0, errs.Internal("failed to list posts", err)
	}

	done := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		counts, err := r.Recount(ctx, id)
		if err != nil {
			r.logger.Warn("failed to recount post", "error", err, "post_id", id)
			continue
		}
		r.logger.Debug("recounted post",
			"post_id", id,
			"likes_count", counts.LikesCount,
			"comments_count", counts.CommentsCount)
		done++
	}
	return done, nil
}

func direction(delta int) string {
	if delta < 0 {
		return "down"
	}
	return "up"
}
