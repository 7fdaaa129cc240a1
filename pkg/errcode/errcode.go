// Package errcode enumerates the error codes carried by *gn.Error values
// across gntenant.
package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBAcquireConnError

	// Tenant schema errors
	InvalidSchemaNameError
	SchemaAlreadyExistsError
	SchemaNotFoundError
	SchemaCreateError
	SchemaDropError
	SchemaListError
	TemplateNotFoundError
	ScopeSetError
	ScopeRestoreFailedError

	// Dump errors
	InvalidDumpOptionsError
	DumpFailedError
	DumpWriteError

	// Migration errors
	MigrationDirError
	MigrationLedgerError
	MigrationError
)

// Is reports whether err, or any error it wraps, is a *gn.Error with the
// given code.
func Is(err error, code gn.ErrorCode) bool {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return false
	}
	return gnErr.Code == code
}
