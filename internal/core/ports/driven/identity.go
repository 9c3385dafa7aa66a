package driven

import "github.com/custodia-labs/ideapad/internal/core/domain"

// IdentityStore holds the user identifier across runs.
type IdentityStore interface {
	// Load returns the stored identity, or the zero identity when none is set.
	Load() (domain.Identity, error)

	// Save stores the identity.
	Save(id domain.Identity) error

	// Clear removes the stored identity.
	Clear() error
}
