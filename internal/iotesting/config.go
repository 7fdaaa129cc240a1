// Package iotesting provides shared test utilities for unit and
// integration tests. This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"testing"

	"github.com/gnames/gntenant/internal/ioconfig"
	"github.com/gnames/gntenant/internal/iodb"
	"github.com/gnames/gntenant/pkg/config"
	"github.com/gnames/gntenant/pkg/db"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gntenant_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It loads the standard config (from file, environment or defaults) and
// overrides the database name to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	home, _ := os.UserHomeDir()
	cfg, err := ioconfig.Load(home)
	if err != nil {
		cfg = config.New()
	}

	// Always use test database for safety
	cfg.Database.Database = TestDatabaseName
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// Connect returns an operator connected to the test database. The test is
// skipped when PostgreSQL is not reachable. The pool is closed when the
// test finishes.
func Connect(t *testing.T) db.Operator {
	t.Helper()

	op := iodb.NewPgxOperator()
	err := op.Connect(context.Background(), GetTestDatabaseConfig())
	if err != nil {
		t.Skipf("PostgreSQL test database is not available: %v", err)
	}
	t.Cleanup(func() {
		_ = op.Close()
	})
	return op
}
