// Package gntenant manages per-tenant PostgreSQL schemas in a shared
// database. It creates tenant schemas from SQL templates, destroys them,
// scopes a borrowed connection to one tenant for a unit of work, and
// writes portable dumps of schemas, tables, functions and extensions.
//
// Every function receives the connection it works on. The connection is
// never closed, and its search_path is always restored before returning.
// A connection is not safe for concurrent use: give every goroutine its
// own.
package gntenant

import (
	"context"

	"github.com/gnames/gntenant/internal/iodump"
	"github.com/gnames/gntenant/internal/ioschema"
	"github.com/gnames/gntenant/pkg/config"
	"github.com/gnames/gntenant/pkg/dump"
	"github.com/gnames/gntenant/pkg/tenant"
)

// Create creates schema name and replays the SQL template from sqlFile
// into it. The template is usually a dump of another tenant. On any error
// nothing is left behind.
func Create(ctx context.Context, name, sqlFile string, conn tenant.Conn) error {
	schema, err := tenant.ParseName(name)
	if err != nil {
		return err
	}
	return ioschema.NewManager(config.New()).
		CreateFromFile(ctx, conn, schema, sqlFile)
}

// Destroy drops schema name and everything in it. Dropping a schema that
// does not exist succeeds.
func Destroy(ctx context.Context, name string, conn tenant.Conn) error {
	schema, err := tenant.ParseName(name)
	if err != nil {
		return err
	}
	return tenant.Destroy(ctx, conn, schema)
}

// Using runs fn with conn scoped to schema. The previous search_path is
// restored however fn exits, and the result of fn is returned.
func Using(
	ctx context.Context,
	schema string,
	conn tenant.Conn,
	fn func(ctx context.Context) error,
) error {
	name, err := tenant.ParseName(schema)
	if err != nil {
		return err
	}
	return tenant.Using(ctx, conn, name, fn)
}

// Migrate runs the migration procedure fn with conn scoped to schema.
func Migrate(
	ctx context.Context,
	schema string,
	conn tenant.Conn,
	fn tenant.MigrationFunc,
) error {
	name, err := tenant.ParseName(schema)
	if err != nil {
		return err
	}
	return tenant.Migrate(ctx, conn, name, fn)
}

// DumpSchema writes a cleaned pg_dump of schema to file. database
// overrides the database of cfg when not empty.
func DumpSchema(
	ctx context.Context,
	cfg *config.Config,
	database, schema, file string,
	opts dump.Options,
) error {
	name, err := tenant.ParseName(schema)
	if err != nil {
		return err
	}
	target := dump.SchemaTarget(database, name)
	return iodump.NewDumper(cfg).DumpTo(ctx, nil, target, file, opts)
}

// DumpTable writes a cleaned pg_dump of one table of schema to file.
func DumpTable(
	ctx context.Context,
	cfg *config.Config,
	database, schema, table, file string,
	opts dump.Options,
) error {
	name, err := tenant.ParseName(schema)
	if err != nil {
		return err
	}
	target, err := dump.TableTarget(database, name, table)
	if err != nil {
		return err
	}
	return iodump.NewDumper(cfg).DumpTo(ctx, nil, target, file, opts)
}

// DumpFunctions writes the functions and procedures of schema to file,
// read through conn.
func DumpFunctions(
	ctx context.Context,
	schema, file string,
	conn tenant.Conn,
	opts dump.Options,
) error {
	name, err := tenant.ParseName(schema)
	if err != nil {
		return err
	}
	target := dump.FunctionsTarget(name)
	return iodump.NewDumper(config.New()).DumpTo(ctx, conn, target, file, opts)
}

// DumpExtensions writes CREATE EXTENSION statements for the extensions of
// the database conn is connected to.
func DumpExtensions(
	ctx context.Context,
	file string,
	conn tenant.Conn,
	opts dump.Options,
) error {
	target := dump.ExtensionsTarget()
	return iodump.NewDumper(config.New()).DumpTo(ctx, conn, target, file, opts)
}
