// Package cache stores check results in SQLite so unchanged files are not
// checked twice.
//
// A cached result is keyed by file path and is valid only while both the
// content hash of the file and the fingerprint of the resolved standard match
// what was stored. Runs are recorded with their totals.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/leapstack-labs/phpstyle/pkg/core"
)

// Store is a SQLite-backed result cache. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open opens or creates the cache database at path and migrates it.
// Use ":memory:" for a throwaway cache.
func Open(path string, opts ...Option) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	s := New(db, opts...)
	s.path = path
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.logger.Debug("opened cache", zap.String("path", path))
	return s, nil
}

// New wraps an already open database. The schema is not migrated.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path given to Open.
func (s *Store) Path() string { return s.path }

// ContentHash returns the hex SHA-256 of content.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached violations for path when both hash and fingerprint
// match the stored entry.
func (s *Store) Get(ctx context.Context, path, hash, fingerprint string) ([]core.Violation, bool, error) {
	var storedHash, storedFP, data string
	err := s.db.QueryRowContext(ctx,
		`SELECT content_hash, fingerprint, violations FROM results WHERE path = ?`, path,
	).Scan(&storedHash, &storedFP, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached result: %w", err)
	}
	if storedHash != hash || storedFP != fingerprint {
		return nil, false, nil
	}

	var vs []core.Violation
	if err := json.Unmarshal([]byte(data), &vs); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached result for %s: %w", path, err)
	}
	for i := range vs {
		vs[i].File = path
	}
	return vs, true, nil
}

// Put stores the violations for path, replacing any earlier entry.
func (s *Store) Put(ctx context.Context, path, hash, fingerprint string, violations []core.Violation) error {
	if violations == nil {
		violations = []core.Violation{}
	}
	data, err := json.Marshal(violations)
	if err != nil {
		return fmt.Errorf("failed to encode result for %s: %w", path, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (path, content_hash, fingerprint, violations, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   content_hash = excluded.content_hash,
		   fingerprint = excluded.fingerprint,
		   violations = excluded.violations,
		   updated_at = excluded.updated_at`,
		path, hash, fingerprint, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store result for %s: %w", path, err)
	}
	return nil
}

// Clear removes every cached result. Run history is kept.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
