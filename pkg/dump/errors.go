package dump

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/pkg/errcode"
)

// InvalidOptionsError is returned when a dump request is inconsistent.
func InvalidOptionsError(reason string) error {
	msg := `Invalid dump request: %s`

	return &gn.Error{
		Code: errcode.InvalidDumpOptionsError,
		Msg:  msg,
		Vars: []any{reason},
		Err:  errors.New("invalid dump options: " + reason),
	}
}

// InvalidTableError is returned when a table name fails validation.
func InvalidTableError(table string, err error) error {
	msg := `Invalid table name <em>%q</em>`

	return &gn.Error{
		Code: errcode.InvalidDumpOptionsError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("invalid table name %q: %w", table, err),
	}
}
