// Package iodump produces SQL dumps of tenant schemas, tables, functions
// and extensions. Schema and table dumps run the pg_dump executable,
// functions and extensions are read from the system catalog. Files are
// written atomically, so a failed dump never leaves a half-written file.
package iodump

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gntenant/pkg/config"
	"github.com/gnames/gntenant/pkg/dump"
	"github.com/gnames/gntenant/pkg/lifecycle"
	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/google/renameio"
)

// runFunc runs an executable and returns its stdout and stderr.
type runFunc func(
	ctx context.Context,
	name string,
	args, env []string,
) (stdout, stderr []byte, err error)

type dumper struct {
	db     config.DatabaseConfig
	pgDump string
	run    runFunc
}

// NewDumper creates a lifecycle.Dumper that uses the database settings and
// the pg_dump executable from cfg.
func NewDumper(cfg *config.Config) lifecycle.Dumper {
	return &dumper{
		db:     cfg.Database,
		pgDump: cfg.Dump.PgDumpPath,
		run:    runCommand,
	}
}

// DumpTo writes the dump of target to path. conn is required for functions
// and extensions targets and ignored otherwise.
func (d *dumper) DumpTo(
	ctx context.Context,
	conn tenant.Conn,
	target dump.Target,
	path string,
	opts dump.Options,
) error {
	if err := opts.Validate(target); err != nil {
		return err
	}

	raw, err := d.produce(ctx, conn, target, opts)
	if err != nil {
		return err
	}

	sql := raw
	if target.Cleaned() {
		sql = tenant.Clean(raw, target.Schema)
	}

	size, err := write(path, sql, opts.Append)
	if err != nil {
		return err
	}

	slog.Info("Dump written",
		"target", target.Label(),
		"path", path,
		"size", humanize.Bytes(uint64(size)),
		"append", opts.Append,
	)
	return nil
}

func (d *dumper) produce(
	ctx context.Context,
	conn tenant.Conn,
	target dump.Target,
	opts dump.Options,
) (string, error) {
	switch target.Kind {
	case dump.SchemaKind, dump.TableKind:
		return d.pgDumpOutput(ctx, target, opts)
	case dump.FunctionsKind:
		if conn == nil {
			return "", dump.InvalidOptionsError("functions dump needs a connection")
		}
		defs, err := conn.QueryColumn(ctx, dump.FunctionsQuery, target.Schema.String())
		if err != nil {
			return "", DumpFailedError(target.Label(), "", err)
		}
		slog.Debug("Read function definitions",
			"schema", target.Schema.String(), "count", len(defs))
		return dump.RenderFunctions(defs), nil
	case dump.ExtensionsKind:
		if conn == nil {
			return "", dump.InvalidOptionsError("extensions dump needs a connection")
		}
		names, err := conn.QueryColumn(ctx, dump.ExtensionsQuery)
		if err != nil {
			return "", DumpFailedError(target.Label(), "", err)
		}
		return dump.RenderExtensions(names), nil
	}
	return "", dump.InvalidOptionsError("unknown dump target")
}

func (d *dumper) pgDumpOutput(
	ctx context.Context,
	target dump.Target,
	opts dump.Options,
) (string, error) {
	args, err := dump.Args(d.db, target, opts)
	if err != nil {
		return "", err
	}

	slog.Debug("Running pg_dump", "bin", d.pgDump, "args", args)
	stdout, stderr, err := d.run(ctx, d.pgDump, args, dump.Env(d.db))
	if err != nil {
		return "", DumpFailedError(target.Label(), string(stderr), err)
	}
	if len(stderr) > 0 {
		slog.Warn("pg_dump reported warnings",
			"target", target.Label(), "stderr", strings.TrimSpace(string(stderr)))
	}
	return string(stdout), nil
}

// write replaces path with sql in one atomic rename. With appendTo the
// existing content of path is kept in front of sql.
func write(path, sql string, appendTo bool) (int, error) {
	data := []byte(sql)
	if appendTo {
		prev, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return 0, DumpWriteError(path, err)
		}
		data = append(prev, data...)
	}

	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return 0, DumpWriteError(path, err)
	}
	return len(data), nil
}

func runCommand(
	ctx context.Context,
	name string,
	args, env []string,
) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
