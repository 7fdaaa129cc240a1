package lifecycle

import (
	"context"

	"github.com/gnames/gntenant/pkg/db"
	"github.com/gnames/gntenant/pkg/tenant"
)

// Migrator brings tenant schemas up to date with a set of migrations.
// Every schema keeps its own ledger of applied migrations, so running a
// Migrator again only applies what is new.
type Migrator interface {
	// Migrate applies pending migrations to schema through conn and returns
	// how many were applied.
	Migrate(ctx context.Context, conn tenant.Conn, schema tenant.Name) (int, error)

	// MigrateAll migrates every schema, borrowing one session from op per
	// concurrent worker. It stops at the first failure.
	MigrateAll(ctx context.Context, op db.Operator, schemas []tenant.Name) error
}
