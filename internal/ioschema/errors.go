package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/pkg/errcode"
	"github.com/gnames/gntenant/pkg/tenant"
)

// TemplateNotFoundError is returned when an SQL file cannot be read.
func TemplateNotFoundError(file string, err error) error {
	msg := `Cannot read SQL file <em>%s</em>

<em>How to fix:</em>
  1. Check the path, relative paths start at the current directory
  2. Create a template with 'gntenant dump schema'`

	return &gn.Error{
		Code: errcode.TemplateNotFoundError,
		Msg:  msg,
		Vars: []any{file},
		Err:  fmt.Errorf("cannot read SQL file %s: %w", file, err),
	}
}

// ExecFileError is returned when SQL from a file fails inside a tenant
// schema. The transaction is rolled back.
func ExecFileError(schema tenant.Name, file string, err error) error {
	msg := `SQL from <em>%s</em> failed in schema <em>%s</em>, nothing was changed`

	return &gn.Error{
		Code: errcode.MigrationError,
		Msg:  msg,
		Vars: []any{file, schema.String()},
		Err: fmt.Errorf("executing %s in schema %s: %w",
			file, schema, err),
	}
}
