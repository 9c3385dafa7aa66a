package services

import (
	"fmt"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// Ensure IdentityService implements the interface.
var _ driving.IdentityService = (*IdentityService)(nil)

// IdentityService manages the local user session.
type IdentityService struct {
	store driven.IdentityStore
}

// NewIdentityService creates a new identity service.
func NewIdentityService(store driven.IdentityStore) *IdentityService {
	return &IdentityService{store: store}
}

// Current returns the stored identity. Read failures yield the zero identity.
func (s *IdentityService) Current() domain.Identity {
	return currentIdentity(s.store)
}

// Login stores userID as the active identity.
func (s *IdentityService) Login(userID string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	id := domain.NewIdentity(userID)
	if id.IsZero() {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if err := s.store.Save(id); err != nil {
		return fmt.Errorf("saving identity: %w", err)
	}
	return nil
}

// Logout clears the active identity.
func (s *IdentityService) Logout() error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clearing identity: %w", err)
	}
	return nil
}

// currentIdentity loads the identity, treating failures as no session.
func currentIdentity(store driven.IdentityStore) domain.Identity {
	if store == nil {
		return domain.Identity{}
	}
	id, err := store.Load()
	if err != nil {
		logger.Warn("loading identity: %v", err)
		return domain.Identity{}
	}
	return id
}

// requireIdentity returns the current identity or ErrNoSession.
func requireIdentity(store driven.IdentityStore) (domain.Identity, error) {
	id := currentIdentity(store)
	if err := id.Require(); err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}
