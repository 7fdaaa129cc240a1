// Package tenant implements the schema-per-tenant engine: validated schema
// names, dump cleaning, scoped search_path switching, and the create,
// destroy and migrate operations built on top of it.
//
// Every operation works against a borrowed Conn. The package never opens or
// closes connections.
package tenant

import (
	"regexp"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
)

// MaxNameLength is the PostgreSQL identifier length limit (NAMEDATALEN-1).
const MaxNameLength = 63

var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// builtinNames are schemas that every database has and no tenant owns.
var builtinNames = []string{"public", "information_schema"}

// Name is a validated PostgreSQL schema name. The only way to get a non-zero
// Name is ParseName, so a Name can be interpolated into DDL through Quoted.
type Name struct {
	value string
}

// ParseName validates s as a tenant schema name. Names with quotes,
// semicolons, whitespace, dots or other punctuation are rejected, as are
// names in the reserved pg_ namespace.
func ParseName(s string) (Name, error) {
	switch {
	case s == "":
		return Name{}, InvalidNameError(s, "name is empty")
	case len(s) > MaxNameLength:
		return Name{}, InvalidNameError(s, "name is longer than 63 bytes")
	case !nameRe.MatchString(s):
		return Name{}, InvalidNameError(s,
			"only letters, digits and underscores are allowed")
	case strings.HasPrefix(strings.ToLower(s), "pg_"):
		return Name{}, InvalidNameError(s, "pg_ prefix is reserved")
	}
	return Name{value: s}, nil
}

// MustParseName is like ParseName but panics on invalid input.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the raw schema name, suitable for bound parameters.
func (n Name) String() string {
	return n.value
}

// Quoted returns the name as a double-quoted SQL identifier.
func (n Name) Quoted() string {
	return pgx.Identifier{n.value}.Sanitize()
}

// Builtin reports whether n is a schema every database ships with, such as
// public. Builtin schemas can be scoped to but are never created or dropped
// as tenants.
func (n Name) Builtin() bool {
	return slices.Contains(builtinNames, n.value)
}

// IsZero reports whether n was never parsed.
func (n Name) IsZero() bool {
	return n.value == ""
}

// folded reports whether the name is stored the same way quoted and
// unquoted, which holds when it has no upper case letters.
func (n Name) folded() bool {
	return strings.ToLower(n.value) == n.value
}
