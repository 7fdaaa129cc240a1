package dump

import (
	"strconv"

	"github.com/gnames/gntenant/pkg/config"
	"github.com/jackc/pgx/v5"
)

// Args builds the pg_dump argument list for a schema or table target. The
// list is deterministic and never contains the password: use Env for it.
//
// Output is plain SQL without ownership, privileges or tablespaces. Data is
// dumped as INSERT statements so it can be replayed through a driver.
func Args(db config.DatabaseConfig, t Target, opts Options) ([]string, error) {
	if !t.UsesPgDump() {
		return nil, InvalidOptionsError(
			t.Kind.String() + " dumps are not produced by pg_dump")
	}
	if t.Schema.IsZero() {
		return nil, InvalidOptionsError("schema is required")
	}
	if err := opts.Validate(t); err != nil {
		return nil, err
	}

	database := db.Database
	if t.Database != "" {
		database = t.Database
	}

	res := []string{
		"--no-owner",
		"--no-privileges",
		"--no-tablespaces",
		"--format=plain",
		"--host=" + db.Host,
		"--port=" + strconv.Itoa(db.Port),
		"--username=" + db.User,
		"--dbname=" + database,
		"--schema=" + t.Schema.Quoted(),
	}

	if t.Kind == TableKind {
		res = append(res,
			"--table="+pgx.Identifier{t.Schema.String(), t.Table.String()}.Sanitize())
	}

	switch {
	case opts.SchemaOnly:
		res = append(res, "--schema-only")
	case opts.DataOnly:
		res = append(res, "--data-only", "--inserts")
	default:
		res = append(res, "--inserts")
	}
	return res, nil
}

// Env returns the environment entries pg_dump needs on top of the inherited
// environment.
func Env(db config.DatabaseConfig) []string {
	res := []string{"PGPASSWORD=" + db.Password}
	if db.SSLMode != "" {
		res = append(res, "PGSSLMODE="+db.SSLMode)
	}
	return res
}
