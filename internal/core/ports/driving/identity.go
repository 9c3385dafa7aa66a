package driving

import "github.com/custodia-labs/ideapad/internal/core/domain"

// IdentityService manages the local user session.
type IdentityService interface {
	// Current returns the active identity, or the zero identity.
	Current() domain.Identity

	// Login stores userID as the active identity.
	Login(userID string) error

	// Logout clears the active identity.
	Logout() error
}
