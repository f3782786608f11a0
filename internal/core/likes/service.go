package likes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"Agora/internal/core/authz"
	"Agora/internal/core/counters"
	"Agora/internal/core/identity"
	"Agora/internal/core/posts"
	"Agora/internal/events"
)

// likeService implements the Service interface for like operations
type likeService struct {
	repo      Repository
	postRepo  posts.Repository
	counters  *counters.Reconciler
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService creates a new like service instance
func NewService(
	repo Repository,
	postRepo posts.Repository,
	reconciler *counters.Reconciler,
	publisher events.Publisher,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &likeService{
		repo:      repo,
		postRepo:  postRepo,
		counters:  reconciler,
		publisher: publisher,
		logger:    logger,
	}
}

// ToggleLike implements the toggle behavior:
// - No existing like → insert it and increment likesCount
// - Like exists → delete it and decrement likesCount (floored at 0)
func (s *likeService) ToggleLike(ctx context.Context, postID string, caller *identity.Caller) (*ToggleResult, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthRequired
	}

	post, err := posts.FindActive(ctx, s.postRepo, postID)
	if err != nil {
		return nil, err
	}

	userID := authz.Canonical(caller.ID)

	existing, err := s.repo.GetByPostAndUser(ctx, post.ID, userID)
	if err != nil && !errors.Is(err, ErrLikeNotFound) {
		s.logger.Error("failed to check existing like",
			"error", err,
			"post_id", post.ID,
			"user_id", userID)
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}

	if existing != nil {
		return s.unlike(ctx, post, userID)
	}
	return s.like(ctx, post, userID)
}

func (s *likeService) like(ctx context.Context, post *posts.Post, userID string) (*ToggleResult, error) {
	like := &Like{
		PostID:    post.ID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, like); err != nil {
		if errors.Is(err, ErrAlreadyLiked) {
			return nil, ErrAlreadyLiked
		}
		return nil, fmt.Errorf("failed to create like: %w", err)
	}

	count, err := s.counters.Increment(ctx, post.ID, counters.Likes)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("post liked", "post_id", post.ID, "user_id", userID, "likes_count", count)

	events.PublishBestEffort(ctx, s.publisher, events.Event{
		Subject:    events.SubjectPostLiked,
		PostID:     post.ID,
		ActorID:    userID,
		LikesCount: events.Count(count),
	}, s.logger)

	return &ToggleResult{Liked: true, LikesCount: count}, nil
}

func (s *likeService) unlike(ctx context.Context, post *posts.Post, userID string) (*ToggleResult, error) {
	removed, err := s.repo.Delete(ctx, post.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete like: %w", err)
	}

	var count int
	if removed {
		count, err = s.counters.Decrement(ctx, post.ID, counters.Likes)
		if err != nil {
			return nil, err
		}
	} else {
		// A concurrent toggle removed the row first and owns the decrement
		current, err := posts.FindActive(ctx, s.postRepo, post.ID)
		if err != nil {
			return nil, err
		}
		count = current.LikesCount
	}

	s.logger.Debug("post unliked", "post_id", post.ID, "user_id", userID, "likes_count", count)

	events.PublishBestEffort(ctx, s.publisher, events.Event{
		Subject:    events.SubjectPostUnliked,
		PostID:     post.ID,
		ActorID:    userID,
		LikesCount: events.Count(count),
	}, s.logger)

	return &ToggleResult{Liked: false, LikesCount: count}, nil
}

// GetLikeState reads the caller's like state for a post
func (s *likeService) GetLikeState(ctx context.Context, postID string, caller *identity.Caller) (*ToggleResult, error) {
	post, err := posts.FindActive(ctx, s.postRepo, postID)
	if err != nil {
		return nil, err
	}

	result := &ToggleResult{LikesCount: post.LikesCount}
	if !caller.Authenticated() {
		return result, nil
	}

	_, err = s.repo.GetByPostAndUser(ctx, post.ID, authz.Canonical(caller.ID))
	switch {
	case err == nil:
		result.Liked = true
	case errors.Is(err, ErrLikeNotFound):
	default:
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}
	return result, nil
}
