// Package iomigrate implements lifecycle.Migrator. Migrations are *.sql
// files applied in lexical order to every tenant schema. Each schema keeps
// its own schema_migrations ledger, managed with GORM.
package iomigrate

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gntenant/pkg/config"
	"github.com/gnames/gntenant/pkg/db"
	"github.com/gnames/gntenant/pkg/errcode"
	"github.com/gnames/gntenant/pkg/lifecycle"
	"github.com/gnames/gntenant/pkg/schema"
	"github.com/gnames/gntenant/pkg/tenant"
	"golang.org/x/sync/errgroup"
)

type migrator struct {
	dir      string
	jobs     int
	switcher *tenant.Switcher
	ledger   ledger
	progress io.Writer
}

// NewMigrator creates a Migrator for SQL files in dir. An empty dir falls
// back to tenant.migrations_dir of cfg.
func NewMigrator(cfg *config.Config, dir string) lifecycle.Migrator {
	if dir == "" {
		dir = cfg.Tenant.MigrationsDir
	}
	return &migrator{
		dir:      dir,
		jobs:     max(cfg.JobsNumber, 1),
		switcher: tenant.NewSwitcher(cfg.Tenant.SharedSchemas...),
		ledger:   gormLedger{},
		progress: os.Stderr,
	}
}

// Migrate applies pending migrations to one schema.
func (m *migrator) Migrate(
	ctx context.Context,
	conn tenant.Conn,
	name tenant.Name,
) (int, error) {
	migs, err := m.load()
	if err != nil {
		return 0, err
	}
	return m.migrate(ctx, conn, name, migs)
}

// MigrateAll applies pending migrations to schemas concurrently. The
// number of workers is limited by jobs_number, every worker borrows its
// own session from op.
func (m *migrator) MigrateAll(
	ctx context.Context,
	op db.Operator,
	schemas []tenant.Name,
) error {
	migs, err := m.load()
	if err != nil {
		return err
	}

	bar := pb.Full.New(len(schemas)).SetWriter(m.progress)
	bar.Set("prefix", "Migrating schemas: ")
	bar.Set(pb.CleanOnFinish, true)
	bar.Start()
	defer bar.Finish()

	var applied atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.jobs)
	for _, name := range schemas {
		g.Go(func() error {
			n, err := m.migrateSession(gCtx, op, name, migs)
			if err != nil {
				return err
			}
			applied.Add(int64(n))
			bar.Increment()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Migrated schemas",
		"schemas", humanize.Comma(int64(len(schemas))),
		"applied", humanize.Comma(applied.Load()),
	)
	return nil
}

// migrateSession runs one schema on its own session. A session whose
// search_path could not be restored is discarded instead of being
// returned to the pool.
func (m *migrator) migrateSession(
	ctx context.Context,
	op db.Operator,
	name tenant.Name,
	migs []schema.Migration,
) (int, error) {
	sess, err := op.Acquire(ctx)
	if err != nil {
		return 0, err
	}

	n, err := m.migrate(ctx, sess, name, migs)
	if errcode.Is(err, errcode.ScopeRestoreFailedError) {
		_ = sess.Discard()
		return n, err
	}

	if rerr := sess.Release(); rerr != nil && err == nil {
		err = rerr
	}
	return n, err
}

func (m *migrator) migrate(
	ctx context.Context,
	conn tenant.Conn,
	name tenant.Name,
	migs []schema.Migration,
) (int, error) {
	var count int
	err := m.switcher.Migrate(ctx, conn, name,
		func(ctx context.Context, conn tenant.Conn) error {
			err := conn.InTx(ctx, func(ctx context.Context, tx tenant.Conn) error {
				return m.ledger.Ensure(ctx, tx)
			})
			if err != nil {
				return MigrationLedgerError(name, err)
			}

			applied, err := m.ledger.Applied(ctx, conn)
			if err != nil {
				return MigrationLedgerError(name, err)
			}

			for _, mig := range schema.Pending(migs, applied) {
				if err = m.apply(ctx, conn, name, mig); err != nil {
					return err
				}
				count++
			}
			return nil
		})
	if err != nil {
		return count, err
	}

	slog.Debug("Schema is up to date",
		"schema", name.String(), "applied", count)
	return count, nil
}

// apply runs one migration and records it in the ledger inside one
// transaction.
func (m *migrator) apply(
	ctx context.Context,
	conn tenant.Conn,
	name tenant.Name,
	mig schema.Migration,
) error {
	bs, err := os.ReadFile(mig.Path)
	if err != nil {
		return MigrationDirError(mig.Path, err)
	}
	sql := string(bs)

	err = conn.InTx(ctx, func(ctx context.Context, tx tenant.Conn) error {
		if strings.TrimSpace(sql) != "" {
			if err := tx.Exec(ctx, sql); err != nil {
				return MigrationError(name, mig.Version, err)
			}
		}
		if err := m.ledger.Record(ctx, tx, mig.Version); err != nil {
			return MigrationLedgerError(name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Applied migration",
		"schema", name.String(), "version", mig.Version)
	return nil
}

// load lists migrations of the migrations directory.
func (m *migrator) load() ([]schema.Migration, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, MigrationDirError(m.dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(m.dir, e.Name()))
	}

	res := schema.FromFiles(paths)
	slog.Debug("Loaded migrations", "dir", m.dir, "count", len(res))
	return res, nil
}
