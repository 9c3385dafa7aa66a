package domain

import "strings"

// Identity is the user session scoping every backend call.
// The zero value is the "no session" state.
type Identity struct {
	UserID string
}

// NewIdentity returns an identity for userID. A blank id yields the zero value.
func NewIdentity(userID string) Identity {
	return Identity{UserID: strings.TrimSpace(userID)}
}

// IsZero reports whether this is the "no session" state.
func (i Identity) IsZero() bool {
	return i.UserID == ""
}

// Require returns ErrNoSession for the zero identity.
func (i Identity) Require() error {
	if i.IsZero() {
		return ErrNoSession
	}
	return nil
}
