// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - IdeaStore: Per-user idea collection
//   - PageStore: Per-user document pages (create-or-update)
//   - HashtagStore: Tag suggestions, creation and aggregates
//   - IdentityStore: The locally persisted user identifier
//   - ConfigStore: Application configuration
//
// The REST backend adapter implements the first three against the remote
// service. The memory and SQLite adapters implement them for the
// development backend and for tests.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
