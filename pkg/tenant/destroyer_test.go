package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gntenant/internal/iotesting"
	"github.com/gnames/gntenant/pkg/errcode"
	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestroy(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn("t1")

	err := tenant.Destroy(ctx, conn, tenant.MustParseName("t1"))
	require.NoError(t, err)
	assert.False(t, conn.Schemas["t1"])
	assert.Equal(t, []string{`DROP SCHEMA IF EXISTS "t1" CASCADE`}, conn.Execs)
}

func TestDestroy_Absent(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn()

	err := tenant.Destroy(ctx, conn, tenant.MustParseName("missing"))
	assert.NoError(t, err)
}

func TestDestroy_Failure(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn("t1")
	conn.ExecErr = func(string) error { return errors.New("lock timeout") }

	err := tenant.Destroy(ctx, conn, tenant.MustParseName("t1"))
	assert.True(t, errcode.Is(err, errcode.SchemaDropError))
	assert.True(t, conn.Schemas["t1"])
}

func TestDestroy_Builtin(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn("public", "information_schema")

	for _, v := range []string{"public", "information_schema"} {
		err := tenant.Destroy(ctx, conn, tenant.MustParseName(v))
		assert.True(t, errcode.Is(err, errcode.InvalidSchemaNameError), v)
		assert.True(t, conn.Schemas[v], v)
	}
	assert.Empty(t, conn.Execs)
}
