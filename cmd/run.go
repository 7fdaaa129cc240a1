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

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	var file string

	runCmd := &cobra.Command{
		Use:   "run NAME",
		Short: "Execute an SQL file inside a tenant schema",
		Long: `Execute SQL from a file with the search_path pointing to one tenant
schema. Unqualified names resolve to the tenant's objects. The file runs
in one transaction and the search_path is restored afterwards.

Examples:
  gntenant run tenant_a --file fix_prices.sql`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRun(args[0], file)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	runCmd.Flags().StringVarP(&file, "file", "f", "", "SQL file to execute")
	_ = runCmd.MarkFlagRequired("file")

	return runCmd
}

func runRun(name, file string) error {
	names, err := parseNames([]string{name})
	if err != nil {
		return err
	}

	sm := ioschema.NewManager(cfg)
	return withSession(context.Background(),
		func(ctx context.Context, _ db.Operator, sess db.Session) error {
			if err := sm.ExecFile(ctx, sess, names[0], file); err != nil {
				return err
			}
			gn.Info("Executed <em>%s</em> in schema <em>%s</em>", file, names[0])
			return nil
		})
}
