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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/internal/ioschema"
	"github.com/gnames/gntenant/pkg/db"
	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/spf13/cobra"
)

// getDestroyCmd returns the destroy command.
func getDestroyCmd() *cobra.Command {
	var force bool

	destroyCmd := &cobra.Command{
		Use:   "destroy NAME",
		Short: "Drop a tenant schema with all its data",
		Long: `Drop a tenant schema together with every table, function and row
inside it. Dropping a schema that does not exist is not an error.

Use --force to skip confirmation.

Examples:
  gntenant destroy tenant_b
  gntenant destroy tenant_b --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDestroy(cmd, args[0], force)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	destroyCmd.Flags().BoolVarP(&force, "force", "f", false,
		"drop without confirmation")

	return destroyCmd
}

func runDestroy(cmd *cobra.Command, name string, force bool) error {
	names, err := parseNames([]string{name})
	if err != nil {
		return err
	}
	schema := names[0]
	if schema.Builtin() {
		return tenant.BuiltinSchemaError(schema)
	}

	if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), schema.String()) {
		gn.Info("Aborted. No changes made.")
		return nil
	}

	sm := ioschema.NewManager(cfg)
	return withSession(context.Background(),
		func(ctx context.Context, _ db.Operator, sess db.Session) error {
			if err := sm.Destroy(ctx, sess, schema); err != nil {
				return err
			}
			gn.Info("Schema <em>%s</em> is dropped", schema)
			return nil
		})
}

// confirm asks the user to approve dropping schema.
func confirm(in io.Reader, out io.Writer, schema string) bool {
	gn.Warn("Schema <em>%s</em> and ALL its data will be dropped.", schema)
	fmt.Fprint(out, "\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
