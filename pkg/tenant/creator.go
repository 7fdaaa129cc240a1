package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// duplicateSchema is the SQLSTATE of CREATE SCHEMA on an existing name.
const duplicateSchema = "42P06"

// Create creates schema and replays templateSQL into it. templateSQL is
// usually a dump produced for another tenant; it is cleaned with schema
// before execution.
//
// CREATE SCHEMA and the template run in one transaction while conn is
// scoped to the new schema, so unqualified objects land in it. Any failure
// rolls everything back and no partial schema is left. The search_path of
// conn is restored afterwards. Builtin schemas such as public are refused.
func (s *Switcher) Create(
	ctx context.Context,
	conn Conn,
	schema Name,
	templateSQL string,
) error {
	if schema.Builtin() {
		return BuiltinSchemaError(schema)
	}
	sql := Clean(templateSQL, schema)

	// the schema does not exist yet, so the scope is not checked
	return s.run(ctx, conn, schema, false, func(ctx context.Context) error {
		return conn.InTx(ctx, func(ctx context.Context, tx Conn) error {
			err := tx.Exec(ctx, "CREATE SCHEMA "+schema.Quoted())
			if err != nil {
				if isDuplicateSchema(err) {
					return SchemaAlreadyExistsError(schema, err)
				}
				return SchemaCreateError(schema, err)
			}

			if strings.TrimSpace(sql) == "" {
				slog.Warn("Template is empty, created bare schema",
					"schema", schema.String())
				return nil
			}

			if err = tx.Exec(ctx, sql); err != nil {
				return fmt.Errorf(
					"replaying template into schema %s: %w", schema, err)
			}
			return nil
		})
	})
}

// Create creates schema from templateSQL without shared schemas on the
// search_path.
func Create(
	ctx context.Context,
	conn Conn,
	schema Name,
	templateSQL string,
) error {
	return NewSwitcher().Create(ctx, conn, schema, templateSQL)
}

func isDuplicateSchema(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == duplicateSchema
}
