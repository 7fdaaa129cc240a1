package tenant

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/pkg/errcode"
)

// InvalidNameError is returned when a schema name fails validation.
func InvalidNameError(name, reason string) error {
	msg := `Invalid schema name <em>%q</em>: %s`

	return &gn.Error{
		Code: errcode.InvalidSchemaNameError,
		Msg:  msg,
		Vars: []any{name, reason},
		Err:  fmt.Errorf("invalid schema name %q: %s", name, reason),
	}
}

// BuiltinSchemaError is returned when creating or dropping a schema that
// every database ships with, such as public.
func BuiltinSchemaError(name Name) error {
	return InvalidNameError(name.String(),
		"built-in schema cannot be created or dropped as a tenant")
}

// SchemaAlreadyExistsError is returned when creating a schema that
// already exists.
func SchemaAlreadyExistsError(name Name, err error) error {
	msg := `Schema <em>%s</em> already exists

<em>How to fix:</em>
  1. Pick a different tenant name
  2. Or drop the schema first with <em>gntenant destroy %s</em>`

	return &gn.Error{
		Code: errcode.SchemaAlreadyExistsError,
		Msg:  msg,
		Vars: []any{name.String(), name.String()},
		Err:  fmt.Errorf("schema %s already exists: %w", name, err),
	}
}

// SchemaNotFoundError is returned when scoping a connection to a schema
// that does not exist.
func SchemaNotFoundError(name Name) error {
	msg := `Schema <em>%s</em> does not exist`

	return &gn.Error{
		Code: errcode.SchemaNotFoundError,
		Msg:  msg,
		Vars: []any{name.String()},
		Err:  fmt.Errorf("schema %s does not exist", name),
	}
}

// SchemaCreateError is returned when CREATE SCHEMA fails for a reason
// other than a duplicate name.
func SchemaCreateError(name Name, err error) error {
	msg := `Cannot create schema <em>%s</em>

<em>Possible causes:</em>
  - Insufficient database permissions
  - Lost database connection`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: []any{name.String()},
		Err:  fmt.Errorf("failed to create schema %s: %w", name, err),
	}
}

// SchemaDropError is returned when DROP SCHEMA fails.
func SchemaDropError(name Name, err error) error {
	msg := `Cannot drop schema <em>%s</em>`

	return &gn.Error{
		Code: errcode.SchemaDropError,
		Msg:  msg,
		Vars: []any{name.String()},
		Err:  fmt.Errorf("failed to drop schema %s: %w", name, err),
	}
}

// SchemaListError is returned when the schema catalog cannot be read.
func SchemaListError(err error) error {
	msg := `Cannot read the list of schemas`

	return &gn.Error{
		Code: errcode.SchemaListError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to list schemas: %w", err),
	}
}

// ScopeSetError is returned when the search_path cannot be read or set
// before the unit of work starts. The connection state is unchanged.
func ScopeSetError(name Name, err error) error {
	msg := `Cannot switch the connection to schema <em>%s</em>`

	return &gn.Error{
		Code: errcode.ScopeSetError,
		Msg:  msg,
		Vars: []any{name.String()},
		Err:  fmt.Errorf("failed to scope connection to %s: %w", name, err),
	}
}

// ScopeRestoreFailedError is returned when the previous search_path could
// not be put back. The connection state is unknown and the connection
// should be discarded. workErr is the unit of work result, if any.
func ScopeRestoreFailedError(
	name Name,
	prev []string,
	err error,
	workErr error,
) error {
	msg := `Cannot restore search_path after using schema <em>%s</em>

<warning>The database connection is left in an unknown state.</warning>
Discard the connection instead of returning it to the pool.`

	cause := err
	if workErr != nil {
		cause = errors.Join(err, workErr)
	}

	return &gn.Error{
		Code: errcode.ScopeRestoreFailedError,
		Msg:  msg,
		Vars: []any{name.String()},
		Err: fmt.Errorf(
			"failed to restore search_path %q after scope %s: %w",
			FormatSearchPath(prev), name, cause),
	}
}
