package ioschema_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gntenant/internal/iodump"
	"github.com/gnames/gntenant/internal/ioschema"
	"github.com/gnames/gntenant/internal/iotesting"
	"github.com/gnames/gntenant/pkg/db"
	"github.com/gnames/gntenant/pkg/dump"
	"github.com/gnames/gntenant/pkg/lifecycle"
	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests below require PostgreSQL and the gntenant_test
// database. Skip them with go test -short.

var widgetNames = []string{
	"ops@tenant_a.example.com",
	"costs $usd$ 5, see tenant_a.prices",
	"it's\nALTER TABLE tenant_a.widgets OWNER TO bob;",
}

func randomSchema(prefix string) tenant.Name {
	return tenant.MustParseName(
		prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}

func createScoped(
	t *testing.T,
	m lifecycle.SchemaManager,
	sess db.Session,
	schema tenant.Name,
	file string,
) {
	t.Helper()
	ctx := context.Background()

	before, err := sess.SearchPath(ctx)
	require.NoError(t, err)

	require.NoError(t, m.CreateFromFile(ctx, sess, schema, file))
	t.Cleanup(func() {
		_ = m.Destroy(context.Background(), sess, schema)
	})

	after, err := sess.SearchPath(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "search_path is restored")
}

// assertWidgets checks the objects and rows replayed from tenant_a_clean.sql.
// next is the expected next value of the id sequence.
func assertWidgets(
	t *testing.T,
	sess db.Session,
	schema tenant.Name,
	next string,
) {
	t.Helper()
	ctx := context.Background()

	cols, err := sess.QueryColumn(ctx, `SELECT column_name FROM information_schema.columns
WHERE table_schema = $1 AND table_name = 'widgets' ORDER BY ordinal_position`,
		schema.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, cols)

	fns, err := sess.QueryColumn(ctx, `SELECT p.proname FROM pg_catalog.pg_proc p
JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
WHERE n.nspname = $1`, schema.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"touch_widget"}, fns)

	err = tenant.Using(ctx, sess, schema, func(ctx context.Context) error {
		names, err := sess.QueryColumn(ctx, "SELECT name FROM widgets ORDER BY id")
		if err != nil {
			return err
		}
		assert.Equal(t, widgetNames, names)

		seq, err := sess.QueryColumn(ctx,
			"SELECT nextval('widgets_id_seq'::regclass)::text")
		if err != nil {
			return err
		}
		assert.Equal(t, []string{next}, seq)
		return nil
	})
	require.NoError(t, err)
}

func TestCreateFromFile_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	op := iotesting.Connect(t)
	cfg := iotesting.GetTestConfig()
	m := ioschema.NewManager(cfg)

	sess, err := op.Acquire(ctx)
	require.NoError(t, err)
	defer sess.Release()

	tpl := filepath.Join("..", "..", "pkg", "tenant", "testdata",
		"tenant_a_clean.sql")
	tenantB := randomSchema("tb_")
	createScoped(t, m, sess, tenantB, tpl)
	assertWidgets(t, sess, tenantB, "4")

	t.Run("dump and replay", func(t *testing.T) {
		if _, err := exec.LookPath(cfg.Dump.PgDumpPath); err != nil {
			t.Skipf("pg_dump is not available: %v", err)
		}

		out := filepath.Join(t.TempDir(), "tenant_b.sql")
		err := iodump.NewDumper(cfg).DumpTo(ctx, sess,
			dump.SchemaTarget("", tenantB), out, dump.Options{})
		require.NoError(t, err)

		bs, err := os.ReadFile(out)
		require.NoError(t, err)
		res := string(bs)
		assert.False(t, tenant.Qualified(res, tenantB))
		assert.Contains(t, res, "CREATE TABLE widgets (")
		assert.Contains(t, res, "'ops@tenant_a.example.com'")

		tenantC := randomSchema("tc_")
		createScoped(t, m, sess, tenantC, out)
		// the dump carries the sequence position after the nextval above
		assertWidgets(t, sess, tenantC, "5")
	})
}
