// Package config provides configuration management for gntenant.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid
// - All mutations go through Option functions
// - Invalid options are rejected with gn.Warn() and config stays valid
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode
//   - Dump: pg_dump_path
//   - Tenant: shared_schemas, migrations_dir
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNTENANT_ prefix with underscores for nesting:
//
//	GNTENANT_DATABASE_HOST=localhost
//	GNTENANT_DATABASE_PORT=5432
//	GNTENANT_DUMP_PG_DUMP_PATH=/usr/lib/postgresql/16/bin/pg_dump
//	GNTENANT_TENANT_SHARED_SCHEMAS=shared
//	GNTENANT_LOG_LEVEL=info
//	GNTENANT_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gntenant configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Dump contains settings of the external dump executable.
	Dump DumpConfig `mapstructure:"dump" yaml:"dump"`

	// Tenant contains settings shared by all tenant schemas.
	Tenant TenantConfig `mapstructure:"tenant" yaml:"tenant"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of tenants processed concurrently by
	// operations that fan out over many schemas. Every job holds its own
	// database connection.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// DumpConfig contains settings for producing SQL dumps.
type DumpConfig struct {
	// PgDumpPath is the pg_dump executable. A bare name is looked up in
	// PATH. Its major version should match the server.
	PgDumpPath string `mapstructure:"pg_dump_path" yaml:"pg_dump_path"`
}

// TenantConfig contains settings that apply to every tenant schema.
type TenantConfig struct {
	// SharedSchemas are appended to the search_path after the tenant schema
	// while a connection is scoped to a tenant. They are never listed as
	// tenants. Empty by default, so the path is exactly the tenant schema.
	SharedSchemas []string `mapstructure:"shared_schemas" yaml:"shared_schemas"`

	// MigrationsDir is the default directory with *.sql migration files.
	MigrationsDir string `mapstructure:"migrations_dir" yaml:"migrations_dir"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "gntenant",
			SSLMode:  "disable",
		},
		Dump: DumpConfig{
			PgDumpPath: "pg_dump",
		},
		Tenant: TenantConfig{
			MigrationsDir: "migrations",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
