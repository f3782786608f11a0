package users

import (
	"strings"
	"time"
)

// DefaultPublicName is the last step of the display-name fallback chain
const DefaultPublicName = "User"

// User is a directory entry owned by the identity subsystem.
// This module reads users and never mutates them, except for dev seeding.
type User struct {
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	PhotoURL    *string   `json:"photoUrl,omitempty" db:"photo_url"`
	ID          string    `json:"id" db:"id"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Username    string    `json:"username" db:"username"`
	Email       string    `json:"email" db:"email"`
	Bio         string    `json:"bio" db:"bio"`
}

// ProfileView is the public profile shape served for /users/{username}
type ProfileView struct {
	CreatedAt   time.Time `json:"createdAt"`
	PhotoURL    *string   `json:"photoUrl"`
	DisplayName string    `json:"displayName"`
	Username    string    `json:"username"`
	Bio         string    `json:"bio"`
}

// SelfView is the profile shape served to the user themselves
type SelfView struct {
	PhotoURL    *string `json:"photoUrl"`
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	Bio         string  `json:"bio"`
}

// PublicName returns the first non-blank candidate, or DefaultPublicName.
// Callers pass candidates in priority order: displayName, then username.
func PublicName(candidates ...string) string {
	for _, c := range candidates {
		if name := strings.TrimSpace(c); name != "" {
			return name
		}
	}
	return DefaultPublicName
}

// ToProfileView projects a user to its public profile
func (u *User) ToProfileView() *ProfileView {
	return &ProfileView{
		DisplayName: u.DisplayName,
		Username:    u.Username,
		PhotoURL:    u.PhotoURL,
		Bio:         u.Bio,
		CreatedAt:   u.CreatedAt,
	}
}

// ToSelfView projects a user to the view served to its owner
func (u *User) ToSelfView() *SelfView {
	return &SelfView{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Username:    u.Username,
		PhotoURL:    u.PhotoURL,
		Bio:         u.Bio,
	}
}
