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

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/internal/ioschema"
	"github.com/gnames/gntenant/pkg/db"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var template string

	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a tenant schema from an SQL template",
		Long: `Create a new tenant schema in PostgreSQL and fill it from an SQL
template.

This command:
  1. Reads the template file (nothing is sent to the database if it is missing)
  2. Creates the schema
  3. Replays the template with the search_path pointing to the new schema

Everything runs in one transaction. If any statement fails the schema is
not created.

A template is usually produced by 'gntenant dump schema' for another tenant.

Examples:
  gntenant create tenant_b --template tenant_a.sql
  gntenant create tenant_b -t tenant_a.sql`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(args[0], template)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().StringVarP(&template, "template", "t", "",
		"SQL file to replay into the new schema")
	_ = createCmd.MarkFlagRequired("template")

	return createCmd
}

func runCreate(name, template string) error {
	names, err := parseNames([]string{name})
	if err != nil {
		return err
	}
	schema := names[0]

	sm := ioschema.NewManager(cfg)
	return withSession(context.Background(),
		func(ctx context.Context, _ db.Operator, sess db.Session) error {
			if err := sm.CreateFromFile(ctx, sess, schema, template); err != nil {
				return err
			}
			gn.Info("Schema <em>%s</em> is created", schema)
			return nil
		})
}
