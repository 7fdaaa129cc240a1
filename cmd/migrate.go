/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/internal/iomigrate"
	"github.com/gnames/gntenant/internal/ioschema"
	"github.com/gnames/gntenant/pkg/db"
	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getMigrateCmd() *cobra.Command {
	var (
		dir string
		all bool
	)

	migrateCmd := &cobra.Command{
		Use:   "migrate [NAME...]",
		Short: "Apply SQL migrations to tenant schemas",
		Long: `Migrate applies *.sql files from a migrations directory to tenant
schemas.

This command:
  1. Reads migration files in lexical order of their names
  2. Scopes a connection to every tenant schema
  3. Applies the files that are not yet in the schema_migrations table
     of that schema, each in its own transaction

Schemas are migrated concurrently, limited by jobs_number. A failed
migration is rolled back, migrations applied before it are kept.

Examples:
  gntenant migrate tenant_a tenant_b --dir migrations
  gntenant migrate --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMigrate(args, dir, all)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	migrateCmd.Flags().StringVar(&dir, "dir", "",
		"migrations directory (default is tenant.migrations_dir)")
	migrateCmd.Flags().BoolVar(&all, "all", false,
		"migrate every tenant schema")

	return migrateCmd
}

func runMigrate(args []string, dir string, all bool) error {
	if len(args) == 0 && !all {
		return errors.New("give schema names or use --all")
	}
	if len(args) > 0 && all {
		return errors.New("schema names cannot be combined with --all")
	}

	names, err := parseNames(args)
	if err != nil {
		return err
	}

	m := iomigrate.NewMigrator(cfg, dir)
	return withSession(context.Background(),
		func(ctx context.Context, op db.Operator, sess db.Session) error {
			if all {
				list, err := ioschema.NewManager(cfg).List(ctx, sess)
				if err != nil {
					return err
				}
				names = tenantNames(list)
			}
			if len(names) == 0 {
				gn.Warn("No tenant schemas found")
				return nil
			}

			if err := m.MigrateAll(ctx, op, names); err != nil {
				return err
			}
			gn.Info("Migrated %d schema(s)", len(names))
			return nil
		})
}

// tenantNames keeps the listed schemas that are valid tenant names. Schemas
// created outside gntenant may fail the rules and are skipped with a
// warning.
func tenantNames(list []string) []tenant.Name {
	res := make([]tenant.Name, 0, len(list))
	for _, v := range list {
		name, err := tenant.ParseName(v)
		if err != nil {
			gn.Warn("Skipping schema <em>%s</em>: not a valid tenant name", v)
			continue
		}
		res = append(res, name)
	}
	return res
}
