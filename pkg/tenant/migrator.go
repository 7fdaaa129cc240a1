package tenant

import "context"

// MigrationFunc is a migration procedure supplied by the caller. It
// receives the Conn scoped to the tenant schema.
type MigrationFunc func(ctx context.Context, conn Conn) error

// Migrate runs fn with conn scoped to schema. Errors from fn are returned
// after the scope is restored.
func (s *Switcher) Migrate(
	ctx context.Context,
	conn Conn,
	schema Name,
	fn MigrationFunc,
) error {
	return s.Run(ctx, conn, schema, func(ctx context.Context) error {
		return fn(ctx, conn)
	})
}

// Migrate runs fn scoped to schema with no shared schemas.
func Migrate(
	ctx context.Context,
	conn Conn,
	schema Name,
	fn MigrationFunc,
) error {
	return NewSwitcher().Migrate(ctx, conn, schema, fn)
}
