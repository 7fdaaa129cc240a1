// Package schema provides the database models gntenant keeps inside every
// tenant schema, and the pure logic of SQL-file migrations.
package schema

import "time"

// SchemaMigration is one row of the per-tenant migration ledger. The table
// is created unqualified, so it lands in the tenant schema the session is
// scoped to.
type SchemaMigration struct {
	// Version is the migration file name without the .sql extension.
	Version string `gorm:"type:varchar(255);primaryKey"`

	// AppliedAt is when the migration was committed.
	AppliedAt time.Time `gorm:"not null"`
}

// TableName returns the PostgreSQL table name for this model.
func (SchemaMigration) TableName() string {
	return "schema_migrations"
}
