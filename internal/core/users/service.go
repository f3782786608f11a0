package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Agora/internal/core/identity"
)

type userService struct {
	userRepo UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile retrieves a user's public profile by username
func (s *userService) GetProfile(ctx context.Context, username string) (*ProfileView, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, ErrUsernameRequired
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user.ToProfileView(), nil
}

// GetSelf retrieves the authenticated caller's profile
func (s *userService) GetSelf(ctx context.Context, caller *identity.Caller) (*SelfView, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthRequired
	}

	user, err := s.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user.ToSelfView(), nil
}

// ResolvePublicName resolves the name shown on a non-anonymous post
func (s *userService) ResolvePublicName(ctx context.Context, caller *identity.Caller) (string, error) {
	if !caller.Authenticated() {
		return "", ErrAuthRequired
	}
	if name := strings.TrimSpace(caller.DisplayName); name != "" {
		return name, nil
	}

	user, err := s.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Token identities may not be mirrored in the directory yet
			s.logger.Debug("caller not in user directory, using token claims",
				"user_id", caller.ID)
			return PublicName(caller.Username), nil
		}
		return "", fmt.Errorf("failed to look up display name: %w", err)
	}

	return PublicName(user.DisplayName, user.Username, caller.Username), nil
}
