package tenant

import (
	"context"
	"log/slog"
)

// Switcher scopes a Conn to one tenant schema for the duration of a unit
// of work.
type Switcher struct {
	// Shared lists schemas appended to the search_path after the tenant
	// schema, for objects every tenant resolves (extensions, lookups).
	// Empty means the search_path is exactly the tenant schema.
	Shared []string
}

// NewSwitcher creates a Switcher that appends shared schemas to every
// tenant scope.
func NewSwitcher(shared ...string) *Switcher {
	return &Switcher{Shared: shared}
}

// Using runs fn with conn scoped to schema and no shared schemas.
func Using(
	ctx context.Context,
	conn Conn,
	schema Name,
	fn func(ctx context.Context) error,
) error {
	return NewSwitcher().Run(ctx, conn, schema, fn)
}

// Run captures the current search_path of conn, points it at schema, runs
// fn, and restores the captured search_path no matter how fn exits: normal
// return, error, panic or context cancellation. The result of fn is
// returned unchanged. If restoration fails the returned error carries
// errcode.ScopeRestoreFailedError and the connection must be discarded.
//
// Nested calls compose: an inner Run captures the outer scope and returns
// to it.
func (s *Switcher) Run(
	ctx context.Context,
	conn Conn,
	schema Name,
	fn func(ctx context.Context) error,
) error {
	return s.run(ctx, conn, schema, true, fn)
}

func (s *Switcher) run(
	ctx context.Context,
	conn Conn,
	schema Name,
	mustExist bool,
	fn func(ctx context.Context) error,
) (err error) {
	prev, err := conn.SearchPath(ctx)
	if err != nil {
		return ScopeSetError(schema, err)
	}

	if mustExist {
		exists, err := Exists(ctx, conn, schema)
		if err != nil {
			return ScopeSetError(schema, err)
		}
		if !exists {
			return SchemaNotFoundError(schema)
		}
	}

	if err = conn.SetSearchPath(ctx, s.path(schema)); err != nil {
		return ScopeSetError(schema, err)
	}
	slog.Debug("Entered schema scope",
		"schema", schema.String(), "previous", prev)

	defer func() {
		// restore even when ctx is already cancelled
		rctx := context.WithoutCancel(ctx)
		if rerr := conn.SetSearchPath(rctx, prev); rerr != nil {
			slog.Error("Cannot restore search_path",
				"schema", schema.String(), "previous", prev, "error", rerr)
			err = ScopeRestoreFailedError(schema, prev, rerr, err)
			return
		}
		slog.Debug("Left schema scope",
			"schema", schema.String(), "restored", prev)
	}()

	return fn(ctx)
}

func (s *Switcher) path(schema Name) []string {
	res := make([]string, 0, len(s.Shared)+1)
	res = append(res, schema.String())
	for _, v := range s.Shared {
		if v != schema.String() {
			res = append(res, v)
		}
	}
	return res
}
