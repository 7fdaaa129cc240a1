// Package db defines the contract for database access. Implementations
// live in internal/iodb.
package db

import (
	"context"

	"github.com/gnames/gntenant/pkg/config"
	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages the connection pool and hands out pinned sessions.
//
// A tenant operation changes session state (the search_path), so it needs
// the same physical connection for its whole duration. Acquire returns
// such a session. Operations that run concurrently must acquire one
// session each.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// Acquire pins one pooled connection for exclusive use.
	Acquire(ctx context.Context) (Session, error)
}

// Session is one pinned connection. It must be released exactly once.
type Session interface {
	tenant.Conn

	// Release returns the connection to the pool.
	Release() error

	// Discard closes the physical connection instead of returning it to
	// the pool. Use it when the session state is unknown, for example
	// after errcode.ScopeRestoreFailedError.
	Discard() error
}
