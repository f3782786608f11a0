package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

// ContentLength counts user-perceived characters (grapheme clusters)
func ContentLength(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// ValidPostID reports whether id is a structurally valid post identifier
func ValidPostID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}

// FindActive loads a post that is neither missing nor soft-deleted.
// Malformed ids are reported as ErrNotFound, matching a lookup miss.
// Shared by the post, like and comment services so every read and
// mutation path treats deleted posts as absent.
func FindActive(ctx context.Context, repo Repository, postID string) (*Post, error) {
	postID = strings.TrimSpace(postID)
	if !ValidPostID(postID) {
		return nil, ErrNotFound
	}

	post, err := repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post.Deleted {
		return nil, ErrNotFound
	}
	return post, nil
}

// validateCreateRequest normalizes req in place and checks it
func validateCreateRequest(req *CreatePostRequest, mediaBaseURL string) error {
	req.Content = strings.TrimSpace(req.Content)
	if req.ImageURLs == nil {
		req.ImageURLs = []string{}
	}

	if req.Content == "" && len(req.ImageURLs) == 0 {
		return ErrEmptyPost
	}

	if ContentLength(req.Content) > MaxContentLength {
		return ErrContentTooLong
	}

	for _, u := range req.ImageURLs {
		if mediaBaseURL == "" || !strings.HasPrefix(u, mediaBaseURL) {
			return ErrInvalidImageURL
		}
	}

	if req.Visibility == "" {
		req.Visibility = VisibilityPublic
	}
	if !req.Visibility.Valid() {
		return ErrInvalidVisibility
	}

	return nil
}
