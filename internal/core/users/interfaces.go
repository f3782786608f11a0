package users

import (
	"context"

	"Agora/internal/core/identity"
)

// UserRepository defines read access to the user directory
type UserRepository interface {
	// GetByID returns ErrUserNotFound when no user has the id
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByUsername matches the lower-cased, trimmed username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Upsert inserts or refreshes a directory entry.
	// Only used to seed development users (cmd/gentoken -db).
	Upsert(ctx context.Context, user *User) error
}

// UserService defines the read-only profile operations
type UserService interface {
	// GetProfile returns the public profile for a username
	GetProfile(ctx context.Context, username string) (*ProfileView, error)

	// GetSelf returns the caller's own profile
	GetSelf(ctx context.Context, caller *identity.Caller) (*SelfView, error)

	// ResolvePublicName runs the display-name fallback chain for a caller:
	// caller.DisplayName, then the directory's displayName, then username,
	// then DefaultPublicName. The directory is only consulted when the
	// caller carries no display name.
	ResolvePublicName(ctx context.Context, caller *identity.Caller) (string, error)
}
