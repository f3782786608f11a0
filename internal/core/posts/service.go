package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"Agora/internal/core/authz"
	"Agora/internal/core/identity"
	"Agora/internal/core/users"
	"Agora/internal/events"
)

// Config holds the post service settings
type Config struct {
	// MediaBaseURL is the prefix every image URL must start with
	MediaBaseURL string
}

type postService struct {
	repo        Repository
	userService users.UserService
	publisher   events.Publisher
	logger      *slog.Logger
	config      Config
}

// NewPostService creates a new post service.
// publisher and logger can be nil.
func NewPostService(
	repo Repository,
	userService users.UserService,
	publisher events.Publisher,
	config Config,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &postService{
		repo:        repo,
		userService: userService,
		publisher:   publisher,
		config:      config,
		logger:      logger,
	}
}

// CreatePost creates a new post
// Flow:
// 1. Require an authenticated caller
// 2. Trim and validate content, images and visibility
// 3. Resolve the public display name (skipped for anonymous posts)
// 4. Persist with zeroed counters
// 5. Publish post.created
func (s *postService) CreatePost(ctx context.Context, caller *identity.Caller, req CreatePostRequest) (*PostView, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthRequired
	}

	if err := validateCreateRequest(&req, s.config.MediaBaseURL); err != nil {
		return nil, err
	}

	displayName := AnonymousName
	if !req.IsAnonymous {
		name, err := s.userService.ResolvePublicName(ctx, caller)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve display name: %w", err)
		}
		displayName = name
	}

	now := time.Now().UTC()
	post := &Post{
		ID:                uuid.NewString(),
		AuthorID:          caller.ID,
		DisplayNamePublic: displayName,
		IsAnonymous:       req.IsAnonymous,
		Content:           req.Content,
		ImageURLs:         req.ImageURLs,
		Visibility:        req.Visibility,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created",
		"post_id", post.ID,
		"anonymous", post.IsAnonymous,
		"images", len(post.ImageURLs))

	event := events.Event{Subject: events.SubjectPostCreated, PostID: post.ID}
	if !post.IsAnonymous {
		event.ActorID = post.AuthorID
	}
	events.PublishBestEffort(ctx, s.publisher, event, s.logger)

	return post.ToView(false), nil
}

// GetPost returns a live post by id
func (s *postService) GetPost(ctx context.Context, postID string) (*PostView, error) {
	post, err := FindActive(ctx, s.repo, postID)
	if err != nil {
		return nil, err
	}
	return post.ToView(true), nil
}

// DeletePost soft-deletes a post owned by the caller
// Checks run in order: id shape, existence, authentication, ownership.
func (s *postService) DeletePost(ctx context.Context, postID string, caller *identity.Caller) error {
	postID = strings.TrimSpace(postID)
	if !ValidPostID(postID) {
		return ErrInvalidPostID
	}

	post, err := FindActive(ctx, s.repo, postID)
	if err != nil {
		return err
	}

	if !caller.Authenticated() {
		return ErrAuthRequired
	}

	if !authz.CanDelete(caller.ID, post.AuthorID) {
		s.logger.Warn("post delete denied",
			"post_id", post.ID,
			"caller_id", caller.ID)
		return ErrNotAuthorized
	}

	if err := s.repo.SoftDelete(ctx, post.ID); err != nil {
		if IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", "post_id", post.ID)

	event := events.Event{Subject: events.SubjectPostDeleted, PostID: post.ID}
	if !post.IsAnonymous {
		event.ActorID = caller.ID
	}
	events.PublishBestEffort(ctx, s.publisher, event, s.logger)

	return nil
}
