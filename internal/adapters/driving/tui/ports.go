// Package tui provides an interactive terminal user interface for ideapad.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ideas manages the user's captured ideas.
	Ideas driving.IdeaService

	// Pages manages the page directory.
	Pages driving.PageService

	// Tags serves hashtag suggestions and the tag listing.
	Tags driving.TagService

	// Identity reports the signed-in user. Optional.
	Identity driving.IdentityService

	// Session owns the open document.
	Session driving.DocumentSession
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	ideas driving.IdeaService,
	pages driving.PageService,
	tags driving.TagService,
	session driving.DocumentSession,
) *Ports {
	return &Ports{
		Ideas:   ideas,
		Pages:   pages,
		Tags:    tags,
		Session: session,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Ideas == nil {
		return ErrMissingIdeaService
	}
	if p.Pages == nil {
		return ErrMissingPageService
	}
	if p.Tags == nil {
		return ErrMissingTagService
	}
	if p.Session == nil {
		return ErrMissingDocumentSession
	}
	return nil
}
