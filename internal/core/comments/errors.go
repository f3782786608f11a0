package comments

import (
	"errors"

	"Agora/internal/core/errs"
)

var (
	// ErrCommentNotFound indicates the comment is missing or not on the post
	ErrCommentNotFound = errs.NotFound("Comment not found")

	// ErrPostIDRequired indicates the post id was blank
	ErrPostIDRequired = errs.Validation("postId", "Post id is required")

	// ErrCommentIDRequired indicates the comment id was blank
	ErrCommentIDRequired = errs.Validation("commentId", "Comment id is required")

	// ErrContentEmpty indicates comment content is empty after trimming
	ErrContentEmpty = errs.Validation("content", "Comment content is required")

	// ErrContentTooLong indicates comment content exceeds MaxContentLength
	ErrContentTooLong = errs.Validation("content", "Comment exceeds maximum length of 1000 characters")

	// ErrNotAuthorized indicates the caller owns neither the comment nor the post
	ErrNotAuthorized = errs.Forbidden("You are not allowed to delete this comment")

	// ErrAuthRequired indicates no caller identity was supplied
	ErrAuthRequired = errs.AuthRequired("Authentication required")
)

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCommentNotFound) || errs.Is(err, errs.KindNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errs.Is(err, errs.KindValidation)
}
