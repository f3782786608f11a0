package likes

import (
	"time"
)

// Like records that a user likes a post.
// At most one Like exists per (PostID, UserID); the store enforces it.
type Like struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	ID        int64     `json:"id" db:"id"`
}

// ToggleResult is the outcome of a toggle or a like-state read
type ToggleResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}
