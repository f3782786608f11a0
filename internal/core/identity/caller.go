package identity

import "strings"

// Caller is the authenticated identity attached to an inbound action.
// A nil *Caller means the request is unauthenticated.
// DisplayName and Username are optional and may be empty.
type Caller struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	Username    string `json:"username,omitempty"`
}

// Authenticated reports whether c carries a usable identity
func (c *Caller) Authenticated() bool {
	return c != nil && strings.TrimSpace(c.ID) != ""
}
