// Package sqlite provides a SQLite-based implementation of the backend store
// ports, used by the development server.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - IdeaStore: captured ideas and their tag occurrences
//   - PageStore: rich-text pages
//   - HashtagStore: tag registry, counts and suggestions
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files
// and records its own version in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.ideapad/data/ideapad.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
