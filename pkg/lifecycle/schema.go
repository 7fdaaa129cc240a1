// Package lifecycle defines the contracts of the impure gntenant
// components: schema management, dumping and migrations. Implementations
// live in internal/io* packages.
package lifecycle

import (
	"context"

	"github.com/gnames/gntenant/pkg/tenant"
)

// SchemaManager creates, destroys, lists and scopes tenant schemas on a
// borrowed connection. The connection is never closed by the manager.
type SchemaManager interface {
	// CreateFromFile creates schema and replays the SQL template stored in
	// file into it. The file is read before any SQL is sent, a missing file
	// leaves the database untouched.
	CreateFromFile(
		ctx context.Context,
		conn tenant.Conn,
		schema tenant.Name,
		file string,
	) error

	// Destroy drops schema with everything in it. A missing schema is not
	// an error.
	Destroy(ctx context.Context, conn tenant.Conn, schema tenant.Name) error

	// Using runs fn with conn scoped to schema and restores the previous
	// search_path afterwards.
	Using(
		ctx context.Context,
		conn tenant.Conn,
		schema tenant.Name,
		fn func(ctx context.Context) error,
	) error

	// ExecFile runs the SQL stored in file inside one transaction with
	// conn scoped to schema.
	ExecFile(
		ctx context.Context,
		conn tenant.Conn,
		schema tenant.Name,
		file string,
	) error

	// List returns existing tenant schemas in name order.
	List(ctx context.Context, conn tenant.Conn) ([]string, error)
}
