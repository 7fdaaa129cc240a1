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
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant"
	"github.com/gnames/gntenant/pkg/config"
	"github.com/gnames/gntenant/pkg/db"
	"github.com/gnames/gntenant/pkg/dump"
	"github.com/spf13/cobra"
)

type dumpFlags struct {
	output     string
	database   string
	schemaOnly bool
	dataOnly   bool
	append     bool
}

func (f *dumpFlags) options() dump.Options {
	return dump.Options{
		SchemaOnly: f.schemaOnly,
		DataOnly:   f.dataOnly,
		Append:     f.append,
	}
}

// path returns the output file, falling back to file name def inside the
// dumps directory.
func (f *dumpFlags) path(def string) string {
	if f.output != "" {
		return f.output
	}
	return filepath.Join(config.DumpDir(homeDir), def)
}

// getDumpCmd returns the dump command with its subcommands.
func getDumpCmd() *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Write portable SQL dumps of tenant objects",
		Long: `Write SQL dumps that can be replayed into another tenant schema.

Schema, table and functions dumps are cleaned: schema qualifiers, search_path
settings, ownership and privileges are removed, so the output can be used as
a template for 'gntenant create'. Extensions are written as
CREATE EXTENSION IF NOT EXISTS statements.

Without --output files go to ~/.local/share/gntenant/dumps.

Examples:
  gntenant dump schema tenant_a -o tenant.sql --schema-only
  gntenant dump table tenant_a widgets -o widgets.sql --data-only
  gntenant dump functions tenant_a -o functions.sql
  gntenant dump extensions -o extensions.sql`,
	}

	dumpCmd.AddCommand(
		getDumpSchemaCmd(),
		getDumpTableCmd(),
		getDumpFunctionsCmd(),
		getDumpExtensionsCmd(),
	)
	return dumpCmd
}

func addOutputFlags(cmd *cobra.Command, f *dumpFlags) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file")
	cmd.Flags().BoolVarP(&f.append, "append", "a", false,
		"append to the output file instead of replacing it")
}

func addPgDumpFlags(cmd *cobra.Command, f *dumpFlags) {
	cmd.Flags().StringVar(&f.database, "source-db", "",
		"database to dump from (default is the configured one)")
	cmd.Flags().BoolVarP(&f.schemaOnly, "schema-only", "s", false,
		"dump only object definitions")
	cmd.Flags().BoolVar(&f.dataOnly, "data-only", false,
		"dump only data")
	cmd.MarkFlagsMutuallyExclusive("schema-only", "data-only")
}

func getDumpSchemaCmd() *cobra.Command {
	var f dumpFlags
	cmd := &cobra.Command{
		Use:   "schema NAME",
		Short: "Dump a tenant schema with pg_dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.path(args[0] + ".sql")
			err := gntenant.DumpSchema(context.Background(), cfg,
				f.database, args[0], path, f.options())
			return reportDump(path, err)
		},
	}
	addOutputFlags(cmd, &f)
	addPgDumpFlags(cmd, &f)
	return cmd
}

func getDumpTableCmd() *cobra.Command {
	var f dumpFlags
	cmd := &cobra.Command{
		Use:   "table SCHEMA TABLE",
		Short: "Dump one table of a tenant schema with pg_dump",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.path(args[0] + "." + args[1] + ".sql")
			err := gntenant.DumpTable(context.Background(), cfg,
				f.database, args[0], args[1], path, f.options())
			return reportDump(path, err)
		},
	}
	addOutputFlags(cmd, &f)
	addPgDumpFlags(cmd, &f)
	return cmd
}

func getDumpFunctionsCmd() *cobra.Command {
	var f dumpFlags
	cmd := &cobra.Command{
		Use:   "functions SCHEMA",
		Short: "Dump functions and procedures of a tenant schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.path(args[0] + "_functions.sql")
			err := withSession(context.Background(),
				func(ctx context.Context, _ db.Operator, sess db.Session) error {
					return gntenant.DumpFunctions(ctx, args[0], path, sess,
						f.options())
				})
			return reportDump(path, err)
		},
	}
	addOutputFlags(cmd, &f)
	return cmd
}

func getDumpExtensionsCmd() *cobra.Command {
	var f dumpFlags
	cmd := &cobra.Command{
		Use:   "extensions",
		Short: "Dump CREATE EXTENSION statements of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.path("extensions.sql")
			err := withSession(context.Background(),
				func(ctx context.Context, _ db.Operator, sess db.Session) error {
					return gntenant.DumpExtensions(ctx, path, sess, f.options())
				})
			return reportDump(path, err)
		},
	}
	addOutputFlags(cmd, &f)
	return cmd
}

func reportDump(path string, err error) error {
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Dump is saved to <em>%s</em>", path)
	return nil
}
