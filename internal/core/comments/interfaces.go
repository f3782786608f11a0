package comments

import (
	"context"

	"Agora/internal/core/identity"
)

// Service defines the business logic interface for comments
type Service interface {
	// AddComment stores a comment on a live post and increments the post's
	// commentsCount
	AddComment(ctx context.Context, postID string, caller *identity.Caller, content string) (*CommentView, error)

	// ListComments returns a live post's comments, newest first.
	// No authentication is required.
	ListComments(ctx context.Context, postID string) ([]*CommentView, error)

	// DeleteComment hard-deletes a comment when the caller wrote it or owns
	// the post, then decrements the post's commentsCount
	DeleteComment(ctx context.Context, postID, commentID string, caller *identity.Caller) (*DeleteResult, error)
}

// Repository defines the data access interface for comments
type Repository interface {
	// Create inserts a comment and assigns its Seq
	Create(ctx context.Context, comment *Comment) error

	// GetByID returns ErrCommentNotFound when no comment has the id
	GetByID(ctx context.Context, id string) (*Comment, error)

	// Delete removes a comment and reports whether a row was removed
	Delete(ctx context.Context, id string) (bool, error)

	// ListByPost returns the post's comments ordered by CreatedAt
	// descending, then Seq descending
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)

	// CountByPost counts the comments of a post
	CountByPost(ctx context.Context, postID string) (int, error)
}
