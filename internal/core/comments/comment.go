package comments

import (
	"time"
)

// MaxContentLength is the longest comment body, in characters
const MaxContentLength = 1000

// Comment is a stored comment on a post.
// Seq increases with every insert and orders comments that share a
// CreatedAt.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	Seq       int64     `json:"-" db:"seq"`
}

// CommentView is the public projection of a comment
type CommentView struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
}

// ToView projects a comment for the API
func (c *Comment) ToView() *CommentView {
	return &CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// DeleteResult reports which ownership authorized a deletion and the
// post's commentsCount afterwards
type DeleteResult struct {
	DeletedBy     string `json:"deletedBy"`
	CommentsCount int    `json:"commentsCount"`
}
