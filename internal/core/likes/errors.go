package likes

import "Agora/internal/core/errs"

var (
	// ErrLikeNotFound indicates the (post, user) pair has no like
	ErrLikeNotFound = errs.NotFound("like not found")

	// ErrAlreadyLiked indicates a concurrent insert won the unique constraint
	ErrAlreadyLiked = errs.Conflict("Post already liked")

	// ErrAuthRequired indicates the toggle was attempted without an identity
	ErrAuthRequired = errs.AuthRequired("Authentication required")
)
