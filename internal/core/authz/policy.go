// Package authz decides who may delete posts and comments.
// There is no role hierarchy and no admin override: an actor may delete a
// resource when it is one of the resource's owners.
package authz

import (
	"strings"

	"github.com/samber/lo"
)

// Role names the ownership that authorized a comment deletion
type Role string

const (
	RoleCommentAuthor Role = "commentAuthor"
	RolePostOwner     Role = "postOwner"
)

// Canonical normalizes an identifier to the single string form used for
// ownership comparisons.
func Canonical(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// CanDelete reports whether actorID is a member of ownerIDs.
// For posts the owners are {authorId}; for comments they are
// {commentAuthorId, postAuthorId}.
func CanDelete(actorID string, ownerIDs ...string) bool {
	actor := Canonical(actorID)
	if actor == "" {
		return false
	}
	return lo.ContainsBy(ownerIDs, func(owner string) bool {
		return Canonical(owner) == actor
	})
}

// CommentDeleteRole returns which ownership authorizes actorID to delete a
// comment. The comment author is checked first. ok is false when the actor
// owns neither the comment nor the post.
func CommentDeleteRole(actorID, commentAuthorID, postAuthorID string) (role Role, ok bool) {
	switch {
	case CanDelete(actorID, commentAuthorID):
		return RoleCommentAuthor, true
	case CanDelete(actorID, postAuthorID):
		return RolePostOwner, true
	default:
		return "", false
	}
}
