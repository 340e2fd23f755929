// Package history persists a local log of executed searches in an
// embedded SQLite database. History is advisory: recording failures are
// for the caller to log and ignore, never to propagate.
package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver, registers as "sqlite".
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// dirPerms is used when creating the database's parent directory.
const dirPerms = 0o700

// Entry is one recorded search.
type Entry struct {
	ID          int64
	FolderID    string
	Query       string
	ResultCount int
	SearchedAt  time.Time
}

// Store is a search-history store backed by SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if necessary) the history database at dbPath and
// applies pending schema migrations. Use ":memory:" for tests.
func Open(ctx context.Context, dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), dirPerms); err != nil {
			return nil, fmt.Errorf("history: creating data directory: %w", err)
		}
	}

	logger.Debug("opening history database", slog.String("path", dbPath))

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: opening database: %w", err)
	}

	if err := runMigrations(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// runMigrations applies all pending schema migrations.
// Uses the goose v3 Provider API (no global state, context-aware).
func runMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	// Strip the "migrations/" prefix so goose sees files at the FS root.
	subFS, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("history: creating migration sub-filesystem: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, subFS)
	if err != nil {
		return fmt.Errorf("history: creating migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("history: running migrations: %w", err)
	}

	for _, r := range results {
		logger.Debug("applied migration",
			slog.String("source", r.Source.Path),
			slog.Int64("duration_ms", r.Duration.Milliseconds()),
		)
	}

	return nil
}

// Record stores one executed search.
func (s *Store) Record(ctx context.Context, folderID, query string, resultCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (folder_id, query, result_count, searched_at) VALUES (?, ?, ?, ?)`,
		folderID, query, resultCount, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: recording search: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, most recent first. A non-positive
// limit is clamped to 1: sqlite treats LIMIT 0 as "no rows" and a negative
// limit as "all rows", neither of which is a useful request here.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 {
		limit = 1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, folder_id, query, result_count, searched_at
		 FROM searches ORDER BY searched_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: listing searches: %w", err)
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var (
			e   Entry
			raw string
		)

		if err := rows.Scan(&e.ID, &e.FolderID, &e.Query, &e.ResultCount, &raw); err != nil {
			return nil, fmt.Errorf("history: scanning row: %w", err)
		}

		ts, parseErr := time.Parse(time.RFC3339Nano, raw)
		if parseErr != nil {
			s.logger.Warn("invalid timestamp in history row",
				slog.Int64("id", e.ID),
				slog.String("raw", raw),
			)
		} else {
			e.SearchedAt = ts
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterating rows: %w", err)
	}

	return entries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
