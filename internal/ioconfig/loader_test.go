package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gntenant/internal/ioconfig"
	"github.com/gnames/gntenant/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := config.ConfigDir(home)
	require.NoError(t, os.MkdirAll(dir, 0755))
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644)
	require.NoError(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := ioconfig.Load(home)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "pg_dump", cfg.Dump.PgDumpPath)
	assert.Equal(t, home, cfg.HomeDir)
}

func TestLoad_File(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
database:
  host: db.example.com
  port: 5433
  database: appdb
dump:
  pg_dump_path: /opt/pg/bin/pg_dump
tenant:
  shared_schemas:
    - shared
    - "bad;name"
log:
  level: debug
jobs_number: 3
`)

	cfg, err := ioconfig.Load(home)
	require.NoError(t, err)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "appdb", cfg.Database.Database)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "/opt/pg/bin/pg_dump", cfg.Dump.PgDumpPath)
	assert.Equal(t, []string{"shared"}, cfg.Tenant.SharedSchemas)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.JobsNumber)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "database:\n  host: from-file\n")
	t.Setenv("GNTENANT_DATABASE_HOST", "from-env")
	t.Setenv("GNTENANT_JOBS_NUMBER", "2")

	cfg, err := ioconfig.Load(home)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Host)
	assert.Equal(t, 2, cfg.JobsNumber)
}

func TestLoad_Malformed(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "database: [unclosed\n")

	_, err := ioconfig.Load(home)
	assert.Error(t, err)
}
