// Package events publishes domain events about posts, likes and comments.
// Publishing is best-effort: a failed publish never fails the action that
// produced the event.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"Agora/internal/metrics"
)

// Subjects published by the core services
const (
	SubjectPostCreated    = "post.created"
	SubjectPostDeleted    = "post.deleted"
	SubjectPostLiked      = "post.liked"
	SubjectPostUnliked    = "post.unliked"
	SubjectCommentCreated = "comment.created"
	SubjectCommentDeleted = "comment.deleted"
)

// Event is the JSON payload of every domain event.
// ActorID is left empty for anonymous posts so the author is never leaked.
type Event struct {
	OccurredAt    time.Time `json:"occurredAt"`
	LikesCount    *int      `json:"likesCount,omitempty"`
	CommentsCount *int      `json:"commentsCount,omitempty"`
	Subject       string    `json:"subject"`
	PostID        string    `json:"postId"`
	ActorID       string    `json:"actorId,omitempty"`
	CommentID     string    `json:"commentId,omitempty"`
	DeletedBy     string    `json:"deletedBy,omitempty"`
}

// Publisher delivers events to subscribers
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PublishBestEffort publishes event and logs instead of returning failures
func PublishBestEffort(ctx context.Context, pub Publisher, event Event, logger *slog.Logger) {
	if pub == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := pub.Publish(ctx, event); err != nil {
		metrics.EventPublishFailures.WithLabelValues(event.Subject).Inc()
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("failed to publish event",
			"error", err,
			"subject", event.Subject,
			"post_id", event.PostID)
	}
}

// Count returns a pointer to n for the optional count fields of Event
func Count(n int) *int {
	return &n
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory
type Recorder struct {
	events []Event
	mu     sync.Mutex
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of the recorded events in publish order
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Subjects returns the subjects of the recorded events in publish order
func (r *Recorder) Subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Subject)
	}
	return out
}
