package likes

import (
	"context"

	"Agora/internal/core/identity"
)

// Service defines the business logic interface for likes
type Service interface {
	// ToggleLike likes the post when the caller has not liked it yet and
	// unlikes it otherwise. The post's likesCount is adjusted in the same
	// operation and returned.
	ToggleLike(ctx context.Context, postID string, caller *identity.Caller) (*ToggleResult, error)

	// GetLikeState returns whether caller likes the post and its current
	// likesCount without mutating anything. A nil caller reads liked=false.
	GetLikeState(ctx context.Context, postID string, caller *identity.Caller) (*ToggleResult, error)
}

// Repository defines the data access interface for the like ledger
type Repository interface {
	// Create inserts a like.
	// Returns ErrAlreadyLiked if the (post, user) pair already exists.
	Create(ctx context.Context, like *Like) error

	// GetByPostAndUser returns ErrLikeNotFound when the pair has no like
	GetByPostAndUser(ctx context.Context, postID, userID string) (*Like, error)

	// Delete removes the like for the pair and reports whether a row was
	// removed. A concurrent toggle may already have removed it.
	Delete(ctx context.Context, postID, userID string) (bool, error)

	// CountByPost counts the ledger rows of a post
	CountByPost(ctx context.Context, postID string) (int, error)
}
