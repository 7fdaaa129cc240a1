package iotesting

import (
	"context"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/jackc/pgx/v5/pgconn"
)

// namespaceQuery starts the schema catalog lookups of pkg/tenant.
const namespaceQuery = "SELECT nspname FROM pg_catalog.pg_namespace"

var (
	createSchemaRe = regexp.MustCompile(`^CREATE SCHEMA "([^"]+)"$`)
	dropSchemaRe   = regexp.MustCompile(`^DROP SCHEMA IF EXISTS "([^"]+)" CASCADE$`)
)

// FakeConn is an in-memory tenant.Conn for hermetic tests. It models the
// session search_path and the set of existing schemas, and records every
// statement it receives. Transactions snapshot the schema set and put it
// back on rollback.
type FakeConn struct {
	// Path is the session search_path.
	Path []string
	// Schemas holds the names of existing schemas.
	Schemas map[string]bool
	// Execs records every Exec statement in order.
	Execs []string
	// PathLog records every search_path that was set.
	PathLog [][]string
	// Commits and Rollbacks count finished transactions.
	Commits, Rollbacks int

	// ExecErr, when set, can fail an Exec call.
	ExecErr func(sql string) error
	// SetPathErr, when set, can fail a SetSearchPath call.
	SetPathErr func(path []string) error
	// Query, when set, answers QueryColumn calls that are not schema
	// catalog lookups.
	Query func(sql string, args ...any) ([]string, error)

	inTx bool
}

// NewFakeConn creates a FakeConn with the default search_path and the
// given existing schemas (public is always present).
func NewFakeConn(schemas ...string) *FakeConn {
	res := &FakeConn{
		Path:    []string{"$user", "public"},
		Schemas: map[string]bool{"public": true},
	}
	for _, v := range schemas {
		res.Schemas[v] = true
	}
	return res
}

// Exec implements tenant.Conn.
func (f *FakeConn) Exec(_ context.Context, sql string, _ ...any) error {
	f.Execs = append(f.Execs, sql)
	if f.ExecErr != nil {
		if err := f.ExecErr(sql); err != nil {
			return err
		}
	}
	if m := createSchemaRe.FindStringSubmatch(sql); m != nil {
		if f.Schemas[m[1]] {
			return &pgconn.PgError{
				Code:    "42P06",
				Message: `schema "` + m[1] + `" already exists`,
			}
		}
		f.Schemas[m[1]] = true
	}
	if m := dropSchemaRe.FindStringSubmatch(sql); m != nil {
		delete(f.Schemas, m[1])
	}
	return nil
}

// QueryColumn implements tenant.Conn.
func (f *FakeConn) QueryColumn(
	_ context.Context,
	sql string,
	args ...any,
) ([]string, error) {
	switch {
	case strings.HasPrefix(sql, namespaceQuery) &&
		strings.Contains(sql, "nspname = $1"):
		name, _ := args[0].(string)
		if f.Schemas[name] {
			return []string{name}, nil
		}
		return nil, nil
	case strings.HasPrefix(sql, namespaceQuery):
		res := make([]string, 0, len(f.Schemas))
		for k := range f.Schemas {
			res = append(res, k)
		}
		sort.Strings(res)
		return res, nil
	case f.Query != nil:
		return f.Query(sql, args...)
	}
	return nil, nil
}

// InTx implements tenant.Conn.
func (f *FakeConn) InTx(
	ctx context.Context,
	fn func(ctx context.Context, tx tenant.Conn) error,
) error {
	if f.inTx {
		return fn(ctx, f)
	}
	snapshot := make(map[string]bool, len(f.Schemas))
	for k, v := range f.Schemas {
		snapshot[k] = v
	}

	f.inTx = true
	err := fn(ctx, f)
	f.inTx = false

	if err != nil {
		f.Schemas = snapshot
		f.Rollbacks++
		return err
	}
	f.Commits++
	return nil
}

// SearchPath implements tenant.Conn.
func (f *FakeConn) SearchPath(_ context.Context) ([]string, error) {
	return slices.Clone(f.Path), nil
}

// SetSearchPath implements tenant.Conn.
func (f *FakeConn) SetSearchPath(_ context.Context, path []string) error {
	if f.SetPathErr != nil {
		if err := f.SetPathErr(path); err != nil {
			return err
		}
	}
	f.Path = slices.Clone(path)
	f.PathLog = append(f.PathLog, slices.Clone(path))
	return nil
}
