package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite "modernc.org/sqlite"
)

// Store wraps the SQLite database and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas and runs
// the idempotent schema migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// StatusRepo returns the review-state repository.
func (s *Store) StatusRepo() StatusRepo { return &statusRepo{db: s.db} }

// QuestionRepo returns the question content repository.
func (s *Store) QuestionRepo() QuestionRepo { return &questionRepo{db: s.db} }

// MasteryRepo returns the chunk mastery repository.
func (s *Store) MasteryRepo() MasteryRepo { return &masteryRepo{db: s.db} }

// ProgressRepo returns the append-only answer log.
func (s *Store) ProgressRepo() ProgressRepo { return &progressRepo{db: s.db} }

// SessionRepo returns the session counter repository.
func (s *Store) SessionRepo() SessionRepo { return &sessionRepo{db: s.db} }

// ChunkRepo returns the chunk metadata repository.
func (s *Store) ChunkRepo() ChunkRepo { return &chunkRepo{db: s.db} }

// ReviewWriter returns the transactional submission writer.
func (s *Store) ReviewWriter() ReviewWriter { return &reviewWriter{db: s.db} }

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. REVQ_DB environment variable
// 2. $XDG_DATA_HOME/revq/revq.db
// 3. ~/.local/share/revq/revq.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("REVQ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "revq", "revq.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// wrapErr maps low-level SQLite failures onto the store's sentinel errors.
// Busy and locked databases surface as ErrTransient so the session layer
// can retry them.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case 5, 6: // SQLITE_BUSY, SQLITE_LOCKED
			return fmt.Errorf("%s: %w: %v", op, ErrTransient, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
