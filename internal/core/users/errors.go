package users

import "Agora/internal/core/errs"

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errs.NotFound("User not found")

	// ErrAuthRequired is returned when a self lookup has no caller
	ErrAuthRequired = errs.AuthRequired("Authentication required")

	// ErrUsernameRequired is returned for a blank username lookup
	ErrUsernameRequired = errs.Validation("username", "username is required")
)
