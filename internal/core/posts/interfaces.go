package posts

import (
	"context"

	"Agora/internal/core/identity"
)

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost validates and stores a new post authored by caller.
	// Flow: Authenticate -> Validate -> Resolve public name -> Persist -> Publish
	CreatePost(ctx context.Context, caller *identity.Caller, req CreatePostRequest) (*PostView, error)

	// GetPost returns the projection of a live post.
	// Missing and soft-deleted posts are both ErrNotFound.
	GetPost(ctx context.Context, postID string) (*PostView, error)

	// DeletePost soft-deletes a post owned by caller.
	// Likes and comments are not cascaded; they become unreachable.
	DeletePost(ctx context.Context, postID string, caller *identity.Caller) error
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post. ID, CreatedAt and UpdatedAt are assigned by
	// the caller.
	Create(ctx context.Context, post *Post) error

	// GetByID returns the stored post, deleted or not.
	// Returns ErrNotFound if no row has the id.
	GetByID(ctx context.Context, id string) (*Post, error)

	// SoftDelete marks a post deleted.
	// Returns ErrNotFound if the post is missing or already deleted.
	SoftDelete(ctx context.Context, id string) error
}
