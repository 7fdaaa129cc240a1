package tenant_test

import (
	"strings"
	"testing"

	"github.com/gnames/gntenant/pkg/errcode"
	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName_Valid(t *testing.T) {
	tests := []string{
		"t1", "tenant_a", "_private", "Tenant", strings.Repeat("a", 63),
	}
	for _, v := range tests {
		n, err := tenant.ParseName(v)
		require.NoError(t, err, v)
		assert.Equal(t, v, n.String())
		assert.False(t, n.IsZero())
	}
}

func TestParseName_Invalid(t *testing.T) {
	tests := []struct {
		msg, input string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("a", 64)},
		{"quote", `a"b`},
		{"injection", "a;drop schema public"},
		{"space", "a b"},
		{"dot", "a.b"},
		{"dash", "a-b"},
		{"leading digit", "1tenant"},
		{"reserved prefix", "pg_tenant"},
		{"reserved prefix upper case", "PG_tenant"},
	}
	for _, v := range tests {
		n, err := tenant.ParseName(v.input)
		require.Error(t, err, v.msg)
		assert.True(t, errcode.Is(err, errcode.InvalidSchemaNameError), v.msg)
		assert.True(t, n.IsZero(), v.msg)
	}
}

func TestName_Quoted(t *testing.T) {
	assert.Equal(t, `"tenant_a"`, tenant.MustParseName("tenant_a").Quoted())
	assert.Equal(t, `"Tenant"`, tenant.MustParseName("Tenant").Quoted())
}

func TestMustParseName_Panics(t *testing.T) {
	assert.Panics(t, func() { tenant.MustParseName("a;b") })
}

func TestName_Builtin(t *testing.T) {
	assert.True(t, tenant.MustParseName("public").Builtin())
	assert.True(t, tenant.MustParseName("information_schema").Builtin())
	assert.False(t, tenant.MustParseName("Public").Builtin())
	assert.False(t, tenant.MustParseName("tenant_a").Builtin())
}
