// Package store implements engine.Storage on top of a SQLite database file.
//
// Every Acquire opens a fresh connection that the caller owns until Close.
// There is no pool and no process-wide handle. Each statement runs inside
// its own transaction that is committed right after the read.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	// Database drivers. "sqlite3" needs cgo; "sqlite" is pure Go.
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/spektr-org/hrquery/engine"
)

// Supported driver names.
const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)

// ErrDatabaseNotFound is returned by New when the file does not exist.
var ErrDatabaseNotFound = errors.New("database not found")

// SQLite hands out one-connection sessions over a database file.
type SQLite struct {
	path   string
	driver string
	logger *zap.Logger
}

// Option configures a SQLite store.
type Option func(*SQLite)

// WithDriver selects the database/sql driver ("sqlite3" or "sqlite").
func WithDriver(driver string) Option {
	return func(s *SQLite) {
		if driver != "" {
			s.driver = driver
		}
	}
}

// WithLogger routes store diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *SQLite) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a store for the database at path.
// The file must already exist: the store never creates a database.
func New(path string, opts ...Option) (*SQLite, error) {
	s := &SQLite{
		path:   path,
		driver: DriverCGO,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := ValidDriver(s.driver); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, path)
		}
		return nil, fmt.Errorf("stat database: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrDatabaseNotFound, path)
	}

	return s, nil
}

// ValidDriver reports whether driver is one the store registers.
func ValidDriver(driver string) error {
	switch driver {
	case DriverCGO, DriverPureGo:
		return nil
	default:
		return fmt.Errorf("unsupported sqlite driver %q (want %q or %q)", driver, DriverCGO, DriverPureGo)
	}
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// Driver returns the database/sql driver name in use.
func (s *SQLite) Driver() string {
	return s.driver
}

// Acquire opens a dedicated connection for one caller.
func (s *SQLite) Acquire(ctx context.Context) (engine.Session, error) {
	db, err := sqlx.Open(s.driver, s.path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Debug("session acquired", zap.String("path", s.path), zap.String("driver", s.driver))
	return &session{db: db, logger: s.logger}, nil
}

// ============================================================================
// SESSION
// ============================================================================

type session struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func (s *session) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, dest, query, args...)
	})
}

func (s *session) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, dest, query, args...)
	})
}

func (s *session) Close() error {
	s.logger.Debug("session released")
	return s.db.Close()
}

// inTx runs fn and commits. The commit is a no-op for reads.
func (s *session) inTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return &engine.StorageError{Op: "begin", Err: err}
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return &engine.StorageError{Op: "commit", Err: err}
	}
	return nil
}
