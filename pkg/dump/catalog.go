package dump

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

const (
	// FunctionsQuery selects the definitions of plain functions and
	// procedures of the schema given as $1, skipping extension members.
	FunctionsQuery = `SELECT pg_catalog.pg_get_functiondef(p.oid)
FROM pg_catalog.pg_proc p
JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
WHERE n.nspname = $1
  AND p.prokind IN ('f', 'p')
  AND NOT EXISTS (
    SELECT 1 FROM pg_catalog.pg_depend d
    WHERE d.classid = 'pg_catalog.pg_proc'::regclass
      AND d.objid = p.oid AND d.deptype = 'e')
ORDER BY p.proname, p.oid`

	// ExtensionsQuery selects installed extensions. plpgsql is always
	// present and is left out.
	ExtensionsQuery = `SELECT extname FROM pg_catalog.pg_extension
WHERE extname <> 'plpgsql'
ORDER BY extname`
)

// RenderFunctions joins function definitions into replayable SQL. Every
// definition is terminated with a semicolon.
func RenderFunctions(defs []string) string {
	var res strings.Builder
	for _, v := range defs {
		v = strings.TrimRight(v, " \t\r\n")
		if v == "" {
			continue
		}
		res.WriteString(v)
		if !strings.HasSuffix(v, ";") {
			res.WriteString(";")
		}
		res.WriteString("\n\n")
	}
	return res.String()
}

// RenderExtensions renders one CREATE EXTENSION IF NOT EXISTS statement
// per extension name.
func RenderExtensions(names []string) string {
	var res strings.Builder
	for _, v := range names {
		if v == "" {
			continue
		}
		res.WriteString("CREATE EXTENSION IF NOT EXISTS ")
		res.WriteString(pgx.Identifier{v}.Sanitize())
		res.WriteString(";\n")
	}
	return res.String()
}
