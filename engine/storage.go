package engine

import "context"

// ============================================================================
// STORAGE PORT - Scoped acquire/release per Execute call
// ============================================================================
// The engine never holds a process-wide database handle. Each Execute call
// acquires a Session, runs exactly one statement, and closes it on every
// exit path.
//
// Implementations:
//   store.SQLite - file-backed SQLite (mattn/go-sqlite3 or modernc.org/sqlite)
// ============================================================================

// Storage hands out short-lived sessions.
type Storage interface {
	Acquire(ctx context.Context) (Session, error)
}

// Session runs parameterized statements on one exclusive connection.
// Select scans all rows into dest (a pointer to a slice); Get scans a single
// row into dest. Arguments are always bound, never concatenated.
type Session interface {
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Close() error
}
