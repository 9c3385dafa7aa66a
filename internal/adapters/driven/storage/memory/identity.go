package memory

import (
	"sync"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
)

// Ensure IdentityStore implements the interface.
var _ driven.IdentityStore = (*IdentityStore)(nil)

// IdentityStore is an in-memory implementation of driven.IdentityStore for testing.
type IdentityStore struct {
	mu sync.RWMutex
	id domain.Identity
}

// NewIdentityStore creates a store holding userID. An empty id means no session.
func NewIdentityStore(userID string) *IdentityStore {
	return &IdentityStore{id: domain.NewIdentity(userID)}
}

// Load returns the stored identity.
func (s *IdentityStore) Load() (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, nil
}

// Save stores the identity.
func (s *IdentityStore) Save(id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	return nil
}

// Clear removes the stored identity.
func (s *IdentityStore) Clear() error {
	return s.Save(domain.Identity{})
}
