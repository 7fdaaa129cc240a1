// Package ioschema implements the lifecycle.SchemaManager interface for
// tenant schema management. This is an impure I/O package that reads SQL
// templates from disk and hands them to pkg/tenant.
package ioschema

import (
	"context"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gntenant/pkg/config"
	"github.com/gnames/gntenant/pkg/lifecycle"
	"github.com/gnames/gntenant/pkg/tenant"
)

// manager implements the lifecycle.SchemaManager interface on top of a
// tenant.Switcher configured with the shared schemas.
type manager struct {
	switcher *tenant.Switcher
	shared   []string
}

// NewManager creates a new SchemaManager. Shared schemas from cfg are
// appended to every tenant search_path and are never listed as tenants.
func NewManager(cfg *config.Config) lifecycle.SchemaManager {
	shared := cfg.Tenant.SharedSchemas
	return &manager{
		switcher: tenant.NewSwitcher(shared...),
		shared:   shared,
	}
}

// CreateFromFile creates schema from the SQL template in file.
func (m *manager) CreateFromFile(
	ctx context.Context,
	conn tenant.Conn,
	schema tenant.Name,
	file string,
) error {
	sql, err := readSQL(file)
	if err != nil {
		return err
	}

	if err = m.switcher.Create(ctx, conn, schema, sql); err != nil {
		return err
	}

	slog.Info("Created schema", "schema", schema.String(), "template", file)
	return nil
}

// Destroy drops schema.
func (m *manager) Destroy(
	ctx context.Context,
	conn tenant.Conn,
	schema tenant.Name,
) error {
	return tenant.Destroy(ctx, conn, schema)
}

// Using runs fn with conn scoped to schema.
func (m *manager) Using(
	ctx context.Context,
	conn tenant.Conn,
	schema tenant.Name,
	fn func(ctx context.Context) error,
) error {
	return m.switcher.Run(ctx, conn, schema, fn)
}

// ExecFile runs the SQL in file scoped to schema in one transaction.
func (m *manager) ExecFile(
	ctx context.Context,
	conn tenant.Conn,
	schema tenant.Name,
	file string,
) error {
	sql, err := readSQL(file)
	if err != nil {
		return err
	}

	err = m.switcher.Run(ctx, conn, schema, func(ctx context.Context) error {
		return conn.InTx(ctx, func(ctx context.Context, tx tenant.Conn) error {
			if err := tx.Exec(ctx, sql); err != nil {
				return ExecFileError(schema, file, err)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	slog.Info("Executed SQL file", "schema", schema.String(), "file", file)
	return nil
}

// List returns tenant schemas, leaving out the shared ones.
func (m *manager) List(
	ctx context.Context,
	conn tenant.Conn,
) ([]string, error) {
	return tenant.List(ctx, conn, m.shared...)
}

func readSQL(file string) (string, error) {
	bs, err := os.ReadFile(file)
	if err != nil {
		return "", TemplateNotFoundError(file, err)
	}
	slog.Debug("Read SQL file",
		"file", file, "size", humanize.Bytes(uint64(len(bs))))
	return string(bs), nil
}
