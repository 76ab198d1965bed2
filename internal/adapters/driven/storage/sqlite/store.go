package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/devkavach22/kavach-edit/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
	"github.com/devkavach22/kavach-edit/internal/logger"
)

// Store is a SQLite-based storage that provides access to the store
// interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.kavach/data/session.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".kavach", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "session.db")

	// WAL lets the MCP server and the CLI share the file.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// SessionCache returns a SessionResultCache backed by this store.
func (s *Store) SessionCache() driven.SessionResultCache {
	return &sessionCache{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

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
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_session_records.up.sql" -> 1
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
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		logger.Debug("applied migration %s", name)
	}

	return nil
}

// ==================== Session Cache ====================

// sessionCache implements driven.SessionResultCache.
type sessionCache struct {
	store *Store
}

var _ driven.SessionResultCache = (*sessionCache)(nil)

// Save stores or replaces the session record.
func (c *sessionCache) Save(ctx context.Context, file domain.ProcessedFile) error {
	value, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshalling session record: %w", err)
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO session_records (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, domain.SessionRecordKey, string(value))
	if err != nil {
		return fmt.Errorf("saving session record: %w", err)
	}
	return nil
}

// Load returns the session record. A malformed record is deleted.
func (c *sessionCache) Load(ctx context.Context) (*domain.ProcessedFile, error) {
	var value string
	err := c.store.db.QueryRowContext(ctx,
		"SELECT value FROM session_records WHERE key = ?", domain.SessionRecordKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session record: %w", err)
	}

	var file domain.ProcessedFile
	if err := json.Unmarshal([]byte(value), &file); err != nil || !file.IsValid() {
		logger.Warn("discarding malformed session record")
		if clearErr := c.Clear(ctx); clearErr != nil {
			return nil, clearErr
		}
		return nil, domain.ErrNotFound
	}
	return &file, nil
}

// Clear deletes the session record.
func (c *sessionCache) Clear(ctx context.Context) error {
	_, err := c.store.db.ExecContext(ctx,
		"DELETE FROM session_records WHERE key = ?", domain.SessionRecordKey)
	if err != nil {
		return fmt.Errorf("clearing session record: %w", err)
	}
	return nil
}
