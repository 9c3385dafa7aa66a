// Package domain defines the core business entities for ideapad.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - StructuredContent: Block-based rich text with an entity table
//   - Document: An editable page with a title and structured content
//   - Idea: A short captured note that may embed #tag tokens
//   - Tag: A backend-aggregated label with its usage count
//   - Identity: The user session threaded into every backend call
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
