package tenant

import "context"

// Conn is one live PostgreSQL session borrowed from the caller. The tenant
// package changes exactly one piece of its state, the search_path, and
// always puts it back.
//
// A Conn is NOT safe for concurrent use. search_path is session state, so
// two goroutines scoping the same Conn would overwrite each other's scope
// and restoration. Serialize access to a Conn or give every concurrent
// tenant operation its own Conn.
type Conn interface {
	// Exec executes one or more SQL statements. Without args the statements
	// are sent through the simple query protocol.
	Exec(ctx context.Context, sql string, args ...any) error

	// QueryColumn runs a query that returns a single text column and
	// collects its values.
	QueryColumn(ctx context.Context, sql string, args ...any) ([]string, error)

	// InTx runs fn inside a transaction. The transaction commits when fn
	// returns nil and rolls back otherwise. InTx on a Conn that is already
	// a transaction joins it.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Conn) error) error

	// SearchPath returns the session's current search_path.
	SearchPath(ctx context.Context) ([]string, error)

	// SetSearchPath replaces the session's search_path.
	SetSearchPath(ctx context.Context, path []string) error
}
