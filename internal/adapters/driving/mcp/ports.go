package mcp

import (
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ideas captures and lists ideas.
	Ideas driving.IdeaService

	// Tags serves suggestions, counts and messages.
	Tags driving.TagService

	// Pages lists the page directory. Optional.
	Pages driving.PageService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ideas == nil {
		return ErrMissingIdeaService
	}
	if p.Tags == nil {
		return ErrMissingTagService
	}
	return nil
}
