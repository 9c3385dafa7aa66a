package file

import (
	"strconv"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
)

// Ensure IdentityStore implements the interface.
var _ driven.IdentityStore = (*IdentityStore)(nil)

// UserIDKey is the config key holding the signed-in user.
const UserIDKey = "session.user_id"

// IdentityStore keeps the user identifier in the configuration file.
type IdentityStore struct {
	config driven.ConfigStore
}

// NewIdentityStore creates an identity store on top of config.
func NewIdentityStore(config driven.ConfigStore) *IdentityStore {
	return &IdentityStore{config: config}
}

// Load returns the stored identity. Numeric ids written by hand are
// accepted.
func (s *IdentityStore) Load() (domain.Identity, error) {
	val, ok := s.config.Get(UserIDKey)
	if !ok {
		return domain.Identity{}, nil
	}
	switch v := val.(type) {
	case string:
		return domain.NewIdentity(v), nil
	case int64:
		return domain.NewIdentity(strconv.FormatInt(v, 10)), nil
	default:
		return domain.Identity{}, nil
	}
}

// Save stores the identity. Saving the zero identity clears it.
func (s *IdentityStore) Save(id domain.Identity) error {
	if id.IsZero() {
		return s.Clear()
	}
	return s.config.Set(UserIDKey, id.UserID)
}

// Clear removes the stored identity.
func (s *IdentityStore) Clear() error {
	return s.config.Delete(UserIDKey)
}
