// Package dump describes what a dumper extracts and how the external
// pg_dump executable is invoked for it. It has no I/O.
package dump

import (
	"github.com/gnames/gntenant/pkg/tenant"
)

// Kind is the granularity of a dump.
type Kind int

const (
	// SchemaKind dumps every object of one schema.
	SchemaKind Kind = iota
	// TableKind dumps one table of a schema.
	TableKind
	// FunctionsKind dumps the functions and procedures of a schema.
	FunctionsKind
	// ExtensionsKind dumps the extensions installed in the database.
	ExtensionsKind
)

func (k Kind) String() string {
	switch k {
	case SchemaKind:
		return "schema"
	case TableKind:
		return "table"
	case FunctionsKind:
		return "functions"
	case ExtensionsKind:
		return "extensions"
	}
	return "unknown"
}

// Target identifies what one dump extracts. It is an immutable value built
// by one of the Target constructors.
type Target struct {
	// Kind is the granularity of the dump.
	Kind Kind
	// Database overrides the configured database name when not empty.
	Database string
	// Schema is the dumped schema. It is zero for extensions.
	Schema tenant.Name
	// Table is set for table targets only.
	Table tenant.Name
}

// SchemaTarget dumps every object of schema in database.
func SchemaTarget(database string, schema tenant.Name) Target {
	return Target{Kind: SchemaKind, Database: database, Schema: schema}
}

// TableTarget dumps one table of schema in database. The table name follows
// the same rules as schema names.
func TableTarget(database string, schema tenant.Name, table string) (Target, error) {
	tbl, err := tenant.ParseName(table)
	if err != nil {
		return Target{}, InvalidTableError(table, err)
	}
	res := Target{
		Kind:     TableKind,
		Database: database,
		Schema:   schema,
		Table:    tbl,
	}
	return res, nil
}

// FunctionsTarget dumps the definitions of the functions and procedures
// that live in schema and do not belong to an extension.
func FunctionsTarget(schema tenant.Name) Target {
	return Target{Kind: FunctionsKind, Schema: schema}
}

// ExtensionsTarget dumps the extensions of the connected database.
func ExtensionsTarget() Target {
	return Target{Kind: ExtensionsKind}
}

// UsesPgDump reports whether the target is produced by the pg_dump
// executable. Other targets are read from the system catalog.
func (t Target) UsesPgDump() bool {
	return t.Kind == SchemaKind || t.Kind == TableKind
}

// Cleaned reports whether the output of the target goes through
// tenant.Clean with the target schema before it is written. Extension
// statements carry no schema identity and are written as is.
func (t Target) Cleaned() bool {
	return t.Kind != ExtensionsKind
}

// Label is a short human-readable description for logs and messages.
func (t Target) Label() string {
	switch t.Kind {
	case TableKind:
		return t.Kind.String() + " " + t.Schema.String() + "." + t.Table.String()
	case ExtensionsKind:
		return t.Kind.String()
	}
	return t.Kind.String() + " " + t.Schema.String()
}
