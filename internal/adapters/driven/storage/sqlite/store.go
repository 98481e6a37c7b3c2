package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/adcheck/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
)

// FileName is the database file created in the data directory.
const FileName = "keywords.db"

// Ensure Store implements the interface.
var _ driven.KeywordCache = (*Store)(nil)

// Store is a SQLite-backed keyword cache.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the cache in dataDir.
// If dataDir is empty, defaults to ~/.adcheck.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".adcheck")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, FileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
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

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys embed.FS) error {
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
		// "001_keyword_cache.up.sql" -> 1
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
	}

	return nil
}

// Save replaces the cached table for source.
func (s *Store) Save(ctx context.Context, source string, table *domain.KeywordTable) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM keywords WHERE source = ?", source); err != nil {
		return fmt.Errorf("clearing keywords: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO keyword_tables (source, fetched_at) VALUES (?, ?)
		ON CONFLICT(source) DO UPDATE SET fetched_at = excluded.fetched_at
	`, source, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving keyword table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO keywords (source, position, term, note) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, term := range table.Keywords() {
		note, _ := table.Note(term)
		if _, err := stmt.ExecContext(ctx, source, i, term, note); err != nil {
			return fmt.Errorf("saving keyword %q: %w", term, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Load returns the cached table for source in its original order.
func (s *Store) Load(ctx context.Context, source string) (*domain.KeywordTable, time.Time, error) {
	var fetchedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, "SELECT fetched_at FROM keyword_tables WHERE source = ?", source).
		Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying keyword table: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT term, note FROM keywords WHERE source = ? ORDER BY position", source)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying keywords: %w", err)
	}
	defer rows.Close()

	table := domain.NewKeywordTable()
	for rows.Next() {
		var term, note string
		if err := rows.Scan(&term, &note); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning keyword: %w", err)
		}
		table.Add(term, note)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("reading keywords: %w", err)
	}

	return table, fetchedAt.Time, nil
}
