package tenant

import (
	"context"
	"log/slog"
)

// Destroy drops schema and everything in it. A schema that does not exist
// is not an error: the postcondition already holds. Builtin schemas such as
// public are refused.
func Destroy(ctx context.Context, conn Conn, schema Name) error {
	if schema.Builtin() {
		return BuiltinSchemaError(schema)
	}
	q := "DROP SCHEMA IF EXISTS " + schema.Quoted() + " CASCADE"
	if err := conn.Exec(ctx, q); err != nil {
		return SchemaDropError(schema, err)
	}
	slog.Info("Dropped schema", "schema", schema.String())
	return nil
}
