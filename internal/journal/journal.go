// Package journal records executed captures in a local SQLite database
// so users can see what a capture actually produced and where.
package journal

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/andreadev-it/norgcap/internal/errors"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Entry is one recorded capture execution.
type Entry struct {
	ID        string `json:"id"`
	Capture   string `json:"capture"`
	Workspace string `json:"workspace"`
	Path      string `json:"path"`
	Kind      string `json:"kind"`
	Line      int    `json:"line"`
	CreatedAt int64  `json:"created_at"`
}

// Init initializes the SQLite database at baseDir/norgcap.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.norgcap.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	dbPath := filepath.Join(baseDir, "norgcap.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := getUserVersion(db)
	if err != nil {
		return err
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS entries (
		  id         TEXT PRIMARY KEY,
		  capture    TEXT NOT NULL,
		  workspace  TEXT NOT NULL,
		  path       TEXT NOT NULL,
		  kind       TEXT NOT NULL,
		  line       INTEGER NOT NULL,
		  created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_created
		ON entries(created_at DESC);

		CREATE INDEX IF NOT EXISTS idx_entries_capture
		ON entries(capture, created_at DESC);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := setUserVersion(db, 1); err != nil {
			return err
		}
	}

	return nil
}

func getUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

func setUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

// Record stores an entry, assigning it a ULID and timestamp when unset,
// and returns the entry ID.
func Record(db *sql.DB, e *Entry) (string, error) {
	if e.ID == "" {
		id, err := generateULID()
		if err != nil {
			return "", errors.NewInternal(err)
		}
		e.ID = id
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO entries (id, capture, workspace, path, kind, line, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, e.ID, e.Capture, e.Workspace, e.Path, e.Kind, e.Line, e.CreatedAt); err != nil {
		return "", errors.NewInternal(err)
	}
	return e.ID, nil
}

// Recent returns the newest entries, most recent first. A non-empty
// capture filters by capture name.
func Recent(db *sql.DB, capture string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, capture, workspace, path, kind, line, created_at
		FROM entries
	`
	args := []any{}
	if capture != "" {
		query += " WHERE capture = ?"
		args = append(args, capture)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Capture, &e.Workspace, &e.Path, &e.Kind, &e.Line, &e.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return entries, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
