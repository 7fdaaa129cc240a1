package iomigrate

import (
	"context"
	"strings"
	"testing"

	"github.com/gnames/gntenant/internal/iotesting"
	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	op := iotesting.Connect(t)

	sess, err := op.Acquire(ctx)
	require.NoError(t, err)
	defer sess.Release()

	name := tenant.MustParseName(
		"t_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
	require.NoError(t, tenant.Create(ctx, sess, name, ""))
	defer func() {
		_ = tenant.Destroy(ctx, sess, name)
	}()

	m := newTestMigrator(writeMigrations(t, migrations), gormLedger{})

	n, err := m.Migrate(ctx, sess, name)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = m.Migrate(ctx, sess, name)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var versions []string
	err = tenant.Using(ctx, sess, name, func(ctx context.Context) error {
		versions, err = gormLedger{}.Applied(ctx, sess)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_users", "0002_email", "0003_empty"}, versions)

	cols, err := sess.QueryColumn(ctx, `SELECT column_name FROM information_schema.columns
WHERE table_schema = $1 AND table_name = 'users' ORDER BY ordinal_position`,
		name.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "email"}, cols)
}
