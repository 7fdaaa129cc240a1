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
	"fmt"
	"io"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/internal/ioschema"
	"github.com/gnames/gntenant/pkg/db"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// getListCmd returns the list command.
func getListCmd() *cobra.Command {
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tenant schemas",
		Long: `List tenant schemas of the database in name order. System schemas,
public and shared schemas are not tenants and are not listed.

Examples:
  gntenant list
  gntenant list --format yaml`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runList(cmd.OutOrStdout(), format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	listCmd.Flags().StringVar(&format, "format", "text",
		"output format: text or yaml")

	return listCmd
}

func runList(out io.Writer, format string) error {
	return withSession(context.Background(),
		func(ctx context.Context, _ db.Operator, sess db.Session) error {
			names, err := ioschema.NewManager(cfg).List(ctx, sess)
			if err != nil {
				return err
			}
			return writeList(out, names, format)
		})
}

type schemaList struct {
	Database string   `yaml:"database"`
	Schemas  []string `yaml:"schemas"`
}

func writeList(out io.Writer, names []string, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		err := enc.Encode(schemaList{
			Database: cfg.Database.Database,
			Schemas:  names,
		})
		if err != nil {
			return err
		}
		return enc.Close()
	}

	for _, v := range names {
		if _, err := fmt.Fprintln(out, v); err != nil {
			return err
		}
	}
	return nil
}
