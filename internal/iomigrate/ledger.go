package iomigrate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/gntenant/internal/iodb"
	"github.com/gnames/gntenant/pkg/schema"
	"github.com/gnames/gntenant/pkg/tenant"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ledger keeps track of migrations applied to the schema a connection is
// scoped to.
type ledger interface {
	// Ensure creates the ledger table if it is missing.
	Ensure(ctx context.Context, conn tenant.Conn) error
	// Applied returns versions of applied migrations.
	Applied(ctx context.Context, conn tenant.Conn) ([]string, error)
	// Record marks version as applied. It is called inside the
	// transaction of the migration.
	Record(ctx context.Context, conn tenant.Conn, version string) error
}

// gormLedger stores the ledger with GORM on the same session as the
// migration, so the unqualified table resolves through the tenant
// search_path.
type gormLedger struct{}

func (gormLedger) open(conn tenant.Conn) (*gorm.DB, error) {
	sqler, ok := conn.(iodb.SQLer)
	if !ok {
		return nil, fmt.Errorf("connection %T does not expose a database/sql handle", conn)
	}

	return gorm.Open(
		postgres.New(postgres.Config{Conn: sqler.SQL()}),
		&gorm.Config{
			SkipDefaultTransaction: true,
			Logger: logger.NewSlogLogger(slog.Default(), logger.Config{
				SlowThreshold:             time.Second,
				IgnoreRecordNotFoundError: true,
				LogLevel:                  logger.Warn,
			}),
		},
	)
}

func (l gormLedger) Ensure(ctx context.Context, conn tenant.Conn) error {
	db, err := l.open(conn)
	if err != nil {
		return err
	}
	return schema.Migrate(db.WithContext(ctx))
}

func (l gormLedger) Applied(ctx context.Context, conn tenant.Conn) ([]string, error) {
	db, err := l.open(conn)
	if err != nil {
		return nil, err
	}

	var res []string
	err = db.WithContext(ctx).
		Model(&schema.SchemaMigration{}).
		Order("version").
		Pluck("version", &res).Error
	return res, err
}

func (l gormLedger) Record(ctx context.Context, conn tenant.Conn, version string) error {
	db, err := l.open(conn)
	if err != nil {
		return err
	}

	row := schema.SchemaMigration{
		Version:   version,
		AppliedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(&row).Error
}
