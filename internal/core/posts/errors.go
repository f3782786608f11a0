package posts

import (
	"Agora/internal/core/errs"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post is missing or soft-deleted
	ErrNotFound = errs.NotFound("Post not found")

	// ErrNotAuthorized is returned when the caller does not own the post
	ErrNotAuthorized = errs.Forbidden("You are not the owner of this post")

	// ErrAuthRequired is returned when no caller identity is present
	ErrAuthRequired = errs.AuthRequired("Authentication required")

	// ErrEmptyPost is returned when a post has neither text nor images
	ErrEmptyPost = errs.Validation("content", "Post must contain text or image")

	// ErrContentTooLong is returned when trimmed content exceeds MaxContentLength
	ErrContentTooLong = errs.Validation("content", "Content too long")

	// ErrInvalidImageURL is returned when an image is not hosted on the media host
	ErrInvalidImageURL = errs.Validation("imageUrls", "Invalid image URL")

	// ErrInvalidVisibility is returned for an unknown visibility value
	ErrInvalidVisibility = errs.Validation("visibility", "visibility must be one of public, followers, private")

	// ErrInvalidPostID is returned when a post id is not a valid identifier
	ErrInvalidPostID = errs.Validation("id", "Invalid post id")
)

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return errs.Validation(field, message)
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	return errs.Is(err, errs.KindValidation)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errs.Is(err, errs.KindNotFound)
}
