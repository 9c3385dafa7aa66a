// Package mcp provides an MCP (Model Context Protocol) server adapter for ideapad.
// It lets AI assistants capture ideas and browse hashtags on the user's behalf.
package mcp

import "errors"

var (
	// ErrMissingIdeaService is returned when the idea service is not provided.
	ErrMissingIdeaService = errors.New("mcp: idea service is required")

	// ErrMissingTagService is returned when the tag service is not provided.
	ErrMissingTagService = errors.New("mcp: tag service is required")
)
