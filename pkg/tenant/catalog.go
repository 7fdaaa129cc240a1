package tenant

import (
	"context"
	"slices"
	"strings"
)

const (
	existsQuery = `SELECT nspname FROM pg_catalog.pg_namespace
WHERE nspname = $1`

	listQuery = `SELECT nspname FROM pg_catalog.pg_namespace
WHERE nspname NOT LIKE 'pg\_%' AND nspname <> 'information_schema'
ORDER BY nspname`
)

// Exists reports whether schema exists.
func Exists(ctx context.Context, conn Conn, schema Name) (bool, error) {
	rows, err := conn.QueryColumn(ctx, existsQuery, schema.String())
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// List returns tenant schemas in name order. System schemas, public and
// the given shared schemas are not tenants and are left out.
func List(ctx context.Context, conn Conn, shared ...string) ([]string, error) {
	rows, err := conn.QueryColumn(ctx, listQuery)
	if err != nil {
		return nil, SchemaListError(err)
	}

	res := make([]string, 0, len(rows))
	for _, v := range rows {
		if v == "public" || strings.HasPrefix(v, "pg_") ||
			slices.Contains(shared, v) {
			continue
		}
		res = append(res, v)
	}
	return res, nil
}
