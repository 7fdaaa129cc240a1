package iodb

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>
  3. Review connection settings in <em>~/.config/gntenant/config.yaml</em>
     Database: %s`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{host, port, host, user, database},
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError is returned when the operator is used before Connect.
func NotConnectedError() error {
	msg := `Database is not connected`

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  errors.New("database operator is not connected"),
	}
}

// AcquireConnError is returned when no connection can be taken from the
// pool.
func AcquireConnError(err error) error {
	msg := `Cannot get a database connection from the pool`

	return &gn.Error{
		Code: errcode.DBAcquireConnError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot acquire connection: %w", err),
	}
}
