package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/pkg/errcode"
)

// caller names the function that built an error, for log context.
func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

// CreateDirError is returned when a gntenant directory cannot be created.
func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create directory <em>%s</em>",
		Vars: []any{dir},
		Err: fmt.Errorf("from %s: cannot create directory %s: %w",
			caller(), dir, err),
	}
}

// CopyFileError is returned when the default config cannot be written.
func CopyFileError(file string, err error) error {
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  "Cannot write default config to <em>%s</em>",
		Vars: []any{file},
		Err: fmt.Errorf("from %s: cannot write %s: %w",
			caller(), file, err),
	}
}

// ReadFileError is returned when a file exists but cannot be read or
// parsed.
func ReadFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read <em>%s</em>",
		Vars: []any{path},
		Err: fmt.Errorf("from %s: cannot read %s: %w",
			caller(), path, err),
	}
}
