package iomigrate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/pkg/errcode"
	"github.com/gnames/gntenant/pkg/tenant"
)

// MigrationDirError is returned when the migrations directory or one of
// its files cannot be read.
func MigrationDirError(path string, err error) error {
	msg := `Cannot read migrations from <em>%s</em>

<em>How to fix:</em>
  1. Point --dir to a directory with *.sql files
  2. Or set tenant.migrations_dir in config.yaml`

	return &gn.Error{
		Code: errcode.MigrationDirError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read migrations %s: %w", path, err),
	}
}

// MigrationLedgerError is returned when the schema_migrations table of a
// schema cannot be created, read or updated.
func MigrationLedgerError(schema tenant.Name, err error) error {
	msg := `Cannot use migration ledger of schema <em>%s</em>`

	return &gn.Error{
		Code: errcode.MigrationLedgerError,
		Msg:  msg,
		Vars: []any{schema.String()},
		Err: fmt.Errorf("migration ledger of schema %s: %w",
			schema, err),
	}
}

// MigrationError is returned when a migration fails. The migration is
// rolled back together with its ledger row.
func MigrationError(schema tenant.Name, version string, err error) error {
	msg := `Migration <em>%s</em> failed in schema <em>%s</em>

Migrations applied before it are kept.`

	return &gn.Error{
		Code: errcode.MigrationError,
		Msg:  msg,
		Vars: []any{version, schema.String()},
		Err: fmt.Errorf("migration %s in schema %s: %w",
			version, schema, err),
	}
}
