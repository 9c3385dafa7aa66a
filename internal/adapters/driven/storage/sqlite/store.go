package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ideapad/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
)

// suggestLimit caps the number of suggestions returned.
const suggestLimit = 10

// Store is a unified SQLite-based storage that provides access to
// all backend store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.ideapad/data/ideapad.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ideapad", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "ideapad.db")

	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// IdeaStore returns an IdeaStore interface backed by this store.
func (s *Store) IdeaStore() driven.IdeaStore {
	return &ideaStore{store: s}
}

// PageStore returns a PageStore interface backed by this store.
func (s *Store) PageStore() driven.PageStore {
	return &pageStore{store: s}
}

// HashtagStore returns a HashtagStore interface backed by this store.
func (s *Store) HashtagStore() driven.HashtagStore {
	return &hashtagStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// parseRowID converts an external identifier to a row id. Anything that is
// not a positive integer cannot name a row.
func parseRowID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.ErrNotFound
	}
	return n, nil
}

// ==================== Idea Store ====================

// ideaStore implements driven.IdeaStore.
type ideaStore struct {
	store *Store
}

var _ driven.IdeaStore = (*ideaStore)(nil)

// List returns a user's ideas oldest first.
func (s *ideaStore) List(ctx context.Context, id domain.Identity) ([]domain.Idea, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, text, created_at FROM ideas
		WHERE user_id = ?
		ORDER BY id
	`, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing ideas: %w", err)
	}
	return scanIdeas(rows)
}

// Create stores an idea and indexes its tag occurrences.
func (s *ideaStore) Create(ctx context.Context, id domain.Identity, text, hashtags string) (*domain.Idea, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyIdea
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.store.now().UTC().Truncate(time.Second)
	res, err := tx.ExecContext(ctx, `
		INSERT INTO ideas (user_id, text, hashtags, created_at) VALUES (?, ?, ?, ?)
	`, id.UserID, text, hashtags, now)
	if err != nil {
		return nil, fmt.Errorf("saving idea: %w", err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading idea id: %w", err)
	}

	for pos, tag := range domain.ExtractHashtags(text) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO idea_hashtags (idea_id, position, tag) VALUES (?, ?, ?)
		`, rowID, pos, tag); err != nil {
			return nil, fmt.Errorf("saving idea hashtag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing idea: %w", err)
	}
	return &domain.Idea{ID: strconv.FormatInt(rowID, 10), Text: text, CreatedAt: now}, nil
}

// Delete removes one of the user's ideas.
func (s *ideaStore) Delete(ctx context.Context, id domain.Identity, ideaID string) error {
	if err := id.Require(); err != nil {
		return err
	}
	rowID, err := parseRowID(ideaID)
	if err != nil {
		return err
	}
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM ideas WHERE id = ? AND user_id = ?", rowID, id.UserID)
	if err != nil {
		return fmt.Errorf("deleting idea: %w", err)
	}
	return requireAffected(res)
}

// ListByHashtag returns the user's ideas mentioning tag, oldest first.
func (s *ideaStore) ListByHashtag(ctx context.Context, id domain.Identity, tag string) ([]domain.Idea, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT i.id, i.text, i.created_at FROM ideas i
		WHERE i.user_id = ? AND EXISTS (
			SELECT 1 FROM idea_hashtags h
			WHERE h.idea_id = i.id AND h.tag = ? COLLATE NOCASE
		)
		ORDER BY i.id
	`, id.UserID, strings.TrimPrefix(tag, "#"))
	if err != nil {
		return nil, fmt.Errorf("listing ideas by hashtag: %w", err)
	}
	return scanIdeas(rows)
}

func scanIdeas(rows *sql.Rows) ([]domain.Idea, error) {
	defer rows.Close()

	ideas := make([]domain.Idea, 0)
	for rows.Next() {
		var rowID int64
		var idea domain.Idea
		var createdAt sql.NullTime
		if err := rows.Scan(&rowID, &idea.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning idea: %w", err)
		}
		idea.ID = strconv.FormatInt(rowID, 10)
		if createdAt.Valid {
			idea.CreatedAt = createdAt.Time.UTC()
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ideas: %w", err)
	}
	return ideas, nil
}

// ==================== Page Store ====================

// pageStore implements driven.PageStore.
type pageStore struct {
	store *Store
}

var _ driven.PageStore = (*pageStore)(nil)

// List returns a user's pages in creation order.
func (s *pageStore) List(ctx context.Context, id domain.Identity) ([]domain.Page, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, content FROM pages
		WHERE user_id = ?
		ORDER BY id
	`, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()

	pages := make([]domain.Page, 0)
	for rows.Next() {
		var rowID int64
		var page domain.Page
		var content sql.NullString
		if err := rows.Scan(&rowID, &page.Title, &content); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		page.ID = strconv.FormatInt(rowID, 10)
		if content.Valid {
			page.StoredContent = content.String
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}

// Save creates a page when w.ID is empty and updates it otherwise.
func (s *pageStore) Save(ctx context.Context, id domain.Identity, w driven.PageWrite) (string, error) {
	if err := id.Require(); err != nil {
		return "", err
	}
	now := s.store.now().UTC()

	if w.ID == "" {
		res, err := s.store.db.ExecContext(ctx, `
			INSERT INTO pages (user_id, title, content, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, id.UserID, w.Title, w.Content, now, now)
		if err != nil {
			return "", fmt.Errorf("saving page: %w", err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("reading page id: %w", err)
		}
		return strconv.FormatInt(rowID, 10), nil
	}

	rowID, err := parseRowID(w.ID)
	if err != nil {
		return "", err
	}
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE pages SET title = ?, content = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, w.Title, w.Content, now, rowID, id.UserID)
	if err != nil {
		return "", fmt.Errorf("updating page: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return "", err
	}
	return w.ID, nil
}

// Delete removes a page. A zero identity deletes by id alone.
func (s *pageStore) Delete(ctx context.Context, id domain.Identity, pageID string) error {
	rowID, err := parseRowID(pageID)
	if err != nil {
		return err
	}
	var res sql.Result
	if id.IsZero() {
		res, err = s.store.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", rowID)
	} else {
		res, err = s.store.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ? AND user_id = ?", rowID, id.UserID)
	}
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	return requireAffected(res)
}

// ==================== Hashtag Store ====================

// hashtagStore implements driven.HashtagStore.
type hashtagStore struct {
	store *Store
}

var _ driven.HashtagStore = (*hashtagStore)(nil)

// Suggest returns registered and used tags containing query, ignoring case.
func (s *hashtagStore) Suggest(ctx context.Context, query string) ([]string, error) {
	query = strings.ToLower(strings.TrimPrefix(query, "#"))
	// The bare name column takes its value from the MIN(src) row, so
	// registered casing wins over casing seen in ideas.
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT name, MIN(src) FROM (
			SELECT name, 0 AS src FROM hashtags
			UNION ALL
			SELECT tag AS name, 1 AS src FROM idea_hashtags
		)
		WHERE instr(lower(name), ?) > 0
		GROUP BY lower(name)
		ORDER BY lower(name)
		LIMIT ?
	`, query, suggestLimit)
	if err != nil {
		return nil, fmt.Errorf("suggesting hashtags: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		var src int
		if err := rows.Scan(&name, &src); err != nil {
			return nil, fmt.Errorf("scanning hashtag: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hashtags: %w", err)
	}
	return names, nil
}

// Create registers a tag. Registering an existing tag is a no-op.
func (s *hashtagStore) Create(ctx context.Context, name string) error {
	name = strings.TrimPrefix(strings.TrimSpace(name), "#")
	if !domain.IsValidTagName(name) {
		return domain.ErrInvalidInput
	}
	if _, err := s.store.db.ExecContext(ctx, `
		INSERT INTO hashtags (name) VALUES (?) ON CONFLICT(name) DO NOTHING
	`, name); err != nil {
		return fmt.Errorf("creating hashtag: %w", err)
	}
	return nil
}

// List returns every tag used in ideas with its occurrence count, most used
// first. Each tag is reported with the casing of its first occurrence.
func (s *hashtagStore) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT tag, MIN(idea_id * 1000000 + position), COUNT(*) AS uses
		FROM idea_hashtags
		GROUP BY lower(tag)
		ORDER BY uses DESC, lower(tag)
	`)
	if err != nil {
		return nil, fmt.Errorf("listing hashtags: %w", err)
	}
	defer rows.Close()

	tags := make([]domain.Tag, 0)
	for rows.Next() {
		var t domain.Tag
		var first int64
		if err := rows.Scan(&t.Name, &first, &t.UsageCount); err != nil {
			return nil, fmt.Errorf("scanning hashtag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hashtags: %w", err)
	}
	return tags, nil
}

// Messages returns ideas from every user that mention tag, newest first.
func (s *hashtagStore) Messages(ctx context.Context, tag string) ([]domain.TagMessage, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT i.id, i.text, i.created_at FROM ideas i
		WHERE EXISTS (
			SELECT 1 FROM idea_hashtags h
			WHERE h.idea_id = i.id AND h.tag = ? COLLATE NOCASE
		)
		ORDER BY i.id DESC
	`, strings.TrimPrefix(tag, "#"))
	if err != nil {
		return nil, fmt.Errorf("listing hashtag messages: %w", err)
	}
	ideas, err := scanIdeas(rows)
	if err != nil {
		return nil, err
	}
	msgs := make([]domain.TagMessage, 0, len(ideas))
	for _, idea := range ideas {
		msgs = append(msgs, domain.TagMessage{ID: idea.ID, Text: idea.Text, CreatedAt: idea.CreatedAt})
	}
	return msgs, nil
}

// requireAffected maps a statement that touched no rows to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
