package iodump

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/pkg/errcode"
)

// DumpFailedError is returned when the dump producer fails. stderr is the
// diagnostic output of pg_dump, if any.
func DumpFailedError(label, stderr string, err error) error {
	stderr = strings.TrimSpace(stderr)
	msg := `Cannot dump <em>%s</em>`
	vars := []any{label}
	if stderr != "" {
		msg += "\n\n%s"
		vars = append(vars, stderr)
	}

	cause := err
	if stderr != "" {
		cause = fmt.Errorf("%w: %s", err, stderr)
	}

	return &gn.Error{
		Code: errcode.DumpFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("dump of %s failed: %w", label, cause),
	}
}

// DumpWriteError is returned when the dump file cannot be written.
func DumpWriteError(path string, err error) error {
	msg := `Cannot write dump file <em>%s</em>`

	return &gn.Error{
		Code: errcode.DumpWriteError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write dump to %s: %w", path, err),
	}
}
