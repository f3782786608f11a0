package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
	"github.com/samber/lo"

	"Agora/internal/core/authz"
	"Agora/internal/core/counters"
	"Agora/internal/core/identity"
	"Agora/internal/core/posts"
	"Agora/internal/events"
)

// commentService implements the Service interface
type commentService struct {
	repo      Repository
	postRepo  posts.Repository
	counters  *counters.Reconciler
	publisher events.Publisher
	logger    *slog.Logger
}

// NewCommentService creates a new comment service.
// publisher and logger can be nil.
func NewCommentService(
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
	return &commentService{
		repo:      repo,
		postRepo:  postRepo,
		counters:  reconciler,
		publisher: publisher,
		logger:    logger,
	}
}

// AddComment creates a comment
// Flow:
// 1. Require an authenticated caller and a post id
// 2. Load the live post
// 3. Trim and validate content
// 4. Persist, then increment commentsCount
// 5. Publish comment.created
func (s *commentService) AddComment(ctx context.Context, postID string, caller *identity.Caller, content string) (*CommentView, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthRequired
	}

	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, ErrPostIDRequired
	}

	post, err := posts.FindActive(ctx, s.postRepo, postID)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentEmpty
	}
	if uniseg.GraphemeClusterCount(content) > MaxContentLength {
		return nil, ErrContentTooLong
	}

	comment := &Comment{
		ID:        uuid.NewString(),
		PostID:    post.ID,
		UserID:    caller.ID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	count, err := s.counters.Increment(ctx, post.ID, counters.Comments)
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"comment_id", comment.ID,
		"post_id", post.ID,
		"comments_count", count)

	events.PublishBestEffort(ctx, s.publisher, events.Event{
		Subject:       events.SubjectCommentCreated,
		PostID:        post.ID,
		CommentID:     comment.ID,
		ActorID:       caller.ID,
		CommentsCount: events.Count(count),
	}, s.logger)

	return comment.ToView(), nil
}

// ListComments returns the comments of a live post, newest first
func (s *commentService) ListComments(ctx context.Context, postID string) ([]*CommentView, error) {
	post, err := posts.FindActive(ctx, s.postRepo, postID)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return lo.Map(list, func(c *Comment, _ int) *CommentView {
		return c.ToView()
	}), nil
}

// DeleteComment removes a comment authored by the caller or on a post the
// caller owns
func (s *commentService) DeleteComment(ctx context.Context, postID, commentID string, caller *identity.Caller) (*DeleteResult, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthRequired
	}

	post, err := posts.FindActive(ctx, s.postRepo, postID)
	if err != nil {
		return nil, err
	}

	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return nil, ErrCommentIDRequired
	}

	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	if comment.PostID != post.ID {
		return nil, ErrCommentNotFound
	}

	role, ok := authz.CommentDeleteRole(caller.ID, comment.UserID, post.AuthorID)
	if !ok {
		s.logger.Warn("comment delete denied",
			"comment_id", comment.ID,
			"post_id", post.ID,
			"caller_id", caller.ID)
		return nil, ErrNotAuthorized
	}

	removed, err := s.repo.Delete(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}
	if !removed {
		// Lost a race with another delete of the same comment
		return nil, ErrCommentNotFound
	}

	count, err := s.counters.Decrement(ctx, post.ID, counters.Comments)
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment deleted",
		"comment_id", comment.ID,
		"post_id", post.ID,
		"deleted_by", role)

	event := events.Event{
		Subject:       events.SubjectCommentDeleted,
		PostID:        post.ID,
		CommentID:     comment.ID,
		DeletedBy:     string(role),
		CommentsCount: events.Count(count),
	}
	// The owner of an anonymous post stays anonymous
	if role == authz.RoleCommentAuthor || !post.IsAnonymous {
		event.ActorID = caller.ID
	}
	events.PublishBestEffort(ctx, s.publisher, event, s.logger)

	return &DeleteResult{DeletedBy: string(role), CommentsCount: count}, nil
}
