package posts

import (
	"time"
)

// Content and media limits
const (
	MaxContentLength = 2000
	AnonymousName    = "Anonymous"
)

// Visibility controls who a post is meant for
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityFollowers Visibility = "followers"
	VisibilityPrivate   Visibility = "private"
)

// Valid reports whether v is one of the known visibilities
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFollowers, VisibilityPrivate:
		return true
	default:
		return false
	}
}

// Post is a stored post. AuthorID is always stored, even for anonymous
// posts, and never leaves the service in a projection.
// A deleted post stays in storage but is absent from every read and
// mutation path.
type Post struct {
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
	ID                string     `db:"id"`
	AuthorID          string     `db:"author_id"`
	DisplayNamePublic string     `db:"display_name_public"`
	Content           string     `db:"content"`
	Visibility        Visibility `db:"visibility"`
	ImageURLs         []string   `db:"image_urls"`
	LikesCount        int        `db:"likes_count"`
	CommentsCount     int        `db:"comments_count"`
	IsAnonymous       bool       `db:"is_anonymous"`
	Deleted           bool       `db:"deleted"`
}

// CreatePostRequest represents input for creating a new post
type CreatePostRequest struct {
	Content     string     `json:"content"`
	Visibility  Visibility `json:"visibility,omitempty"`
	ImageURLs   []string   `json:"imageUrls,omitempty"`
	IsAnonymous bool       `json:"isAnonymous"`
}

// PostView is the public projection of a post.
// It has no author field regardless of IsAnonymous.
type PostView struct {
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
	ID                string     `json:"id"`
	DisplayNamePublic string     `json:"displayNamePublic"`
	Content           string     `json:"content"`
	Visibility        Visibility `json:"visibility"`
	ImageURLs         []string   `json:"imageUrls"`
	LikesCount        int        `json:"likesCount"`
	CommentsCount     int        `json:"commentsCount"`
	IsAnonymous       bool       `json:"isAnonymous"`
}

// ToView projects a post for the API. withUpdatedAt controls whether the
// updatedAt field is included (reads include it, creation does not).
func (p *Post) ToView(withUpdatedAt bool) *PostView {
	imageURLs := p.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}

	view := &PostView{
		ID:                p.ID,
		DisplayNamePublic: p.DisplayNamePublic,
		IsAnonymous:       p.IsAnonymous,
		Content:           p.Content,
		ImageURLs:         imageURLs,
		Visibility:        p.Visibility,
		LikesCount:        p.LikesCount,
		CommentsCount:     p.CommentsCount,
		CreatedAt:         p.CreatedAt,
	}
	if withUpdatedAt {
		updatedAt := p.UpdatedAt
		view.UpdatedAt = &updatedAt
	}
	return view
}
