package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/internal/iotesting"
	"github.com/gnames/gntenant/pkg/errcode"
	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultPath = []string{"$user", "public"}

func TestUsing_ScopesAndRestores(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn("tenant_a")
	schema := tenant.MustParseName("tenant_a")

	var inside []string
	err := tenant.Using(ctx, conn, schema, func(ctx context.Context) error {
		var err error
		inside, err = conn.SearchPath(ctx)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant_a"}, inside)
	assert.Equal(t, defaultPath, conn.Path)
}

func TestUsing_RestoresOnError(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn("tenant_a")
	errWork := errors.New("work failed")

	err := tenant.Using(ctx, conn, tenant.MustParseName("tenant_a"),
		func(context.Context) error { return errWork })
	assert.Same(t, errWork, err)
	assert.Equal(t, defaultPath, conn.Path)
}

func TestUsing_RestoresOnPanic(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn("tenant_a")

	assert.PanicsWithValue(t, "boom", func() {
		_ = tenant.Using(ctx, conn, tenant.MustParseName("tenant_a"),
			func(context.Context) error { panic("boom") })
	})
	assert.Equal(t, defaultPath, conn.Path)
}

func TestUsing_RestoresOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	conn := iotesting.NewFakeConn("tenant_a")

	err := tenant.Using(ctx, conn, tenant.MustParseName("tenant_a"),
		func(ctx context.Context) error {
			cancel()
			return ctx.Err()
		})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, defaultPath, conn.Path)
}

func TestUsing_Nested(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn("a", "b")
	a, b := tenant.MustParseName("a"), tenant.MustParseName("b")

	var seen [][]string
	record := func(ctx context.Context) {
		p, _ := conn.SearchPath(ctx)
		seen = append(seen, p)
	}

	err := tenant.Using(ctx, conn, a, func(ctx context.Context) error {
		record(ctx)
		err := tenant.Using(ctx, conn, b, func(ctx context.Context) error {
			record(ctx)
			return nil
		})
		record(ctx)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"a"}}, seen)
	assert.Equal(t, defaultPath, conn.Path)
}

func TestUsing_SchemaNotFound(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn()
	var called bool

	err := tenant.Using(ctx, conn, tenant.MustParseName("missing"),
		func(context.Context) error {
			called = true
			return nil
		})
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.SchemaNotFoundError))
	assert.False(t, called)
	assert.Empty(t, conn.PathLog)
}

func TestUsing_SetFailure(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn("tenant_a")
	conn.SetPathErr = func([]string) error { return errors.New("conn lost") }
	var called bool

	err := tenant.Using(ctx, conn, tenant.MustParseName("tenant_a"),
		func(context.Context) error {
			called = true
			return nil
		})
	assert.True(t, errcode.Is(err, errcode.ScopeSetError))
	assert.False(t, called)
	assert.Equal(t, defaultPath, conn.Path)
}

func TestUsing_RestoreFailure(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn("tenant_a")
	conn.SetPathErr = func(path []string) error {
		if len(path) > 1 {
			return errors.New("conn lost")
		}
		return nil
	}

	errWork := errors.New("work failed")
	err := tenant.Using(ctx, conn, tenant.MustParseName("tenant_a"),
		func(context.Context) error { return errWork })
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.ScopeRestoreFailedError))
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.ErrorIs(t, gnErr.Err, errWork)
	assert.Equal(t, []string{"tenant_a"}, conn.Path)
}

func TestSwitcher_Shared(t *testing.T) {
	ctx := context.Background()
	conn := iotesting.NewFakeConn("tenant_a", "shared")
	sw := tenant.NewSwitcher("shared", "tenant_a", "public")

	err := sw.Run(ctx, conn, tenant.MustParseName("tenant_a"),
		func(context.Context) error { return nil })
	require.NoError(t, err)
	require.Len(t, conn.PathLog, 2)
	assert.Equal(t, []string{"tenant_a", "shared", "public"}, conn.PathLog[0])
	assert.Equal(t, defaultPath, conn.PathLog[1])
}
