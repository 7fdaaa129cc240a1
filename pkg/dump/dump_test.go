package dump_test

import (
	"testing"

	"github.com/gnames/gntenant/pkg/config"
	"github.com/gnames/gntenant/pkg/dump"
	"github.com/gnames/gntenant/pkg/errcode"
	"github.com/gnames/gntenant/pkg/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dbConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Database: "appdb",
		SSLMode:  "disable",
	}
}

func TestArgs_Schema(t *testing.T) {
	tgt := dump.SchemaTarget("", tenant.MustParseName("tenant_a"))

	res, err := dump.Args(dbConfig(), tgt, dump.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"--no-owner",
		"--no-privileges",
		"--no-tablespaces",
		"--format=plain",
		"--host=db.local",
		"--port=5433",
		"--username=app",
		"--dbname=appdb",
		`--schema="tenant_a"`,
		"--inserts",
	}, res)
	assert.NotContains(t, res, "secret")
}

func TestArgs_Variants(t *testing.T) {
	schema := tenant.MustParseName("tenant_a")
	tbl, err := dump.TableTarget("other", schema, "widgets")
	require.NoError(t, err)

	tests := []struct {
		msg  string
		tgt  dump.Target
		opts dump.Options
		has  []string
		not  []string
	}{
		{
			msg:  "schema only",
			tgt:  dump.SchemaTarget("", schema),
			opts: dump.Options{SchemaOnly: true},
			has:  []string{"--schema-only"},
			not:  []string{"--inserts", "--data-only"},
		},
		{
			msg:  "data only",
			tgt:  dump.SchemaTarget("", schema),
			opts: dump.Options{DataOnly: true},
			has:  []string{"--data-only", "--inserts"},
			not:  []string{"--schema-only"},
		},
		{
			msg: "table with database override",
			tgt: tbl,
			has: []string{`--table="tenant_a"."widgets"`, "--dbname=other"},
			not: []string{"--dbname=appdb"},
		},
	}

	for _, v := range tests {
		res, err := dump.Args(dbConfig(), v.tgt, v.opts)
		require.NoError(t, err, v.msg)
		for _, arg := range v.has {
			assert.Contains(t, res, arg, v.msg)
		}
		for _, arg := range v.not {
			assert.NotContains(t, res, arg, v.msg)
		}
	}
}

func TestArgs_Invalid(t *testing.T) {
	schema := tenant.MustParseName("tenant_a")
	tests := []struct {
		msg  string
		tgt  dump.Target
		opts dump.Options
	}{
		{"conflicting options", dump.SchemaTarget("", schema),
			dump.Options{SchemaOnly: true, DataOnly: true}},
		{"catalog target", dump.FunctionsTarget(schema), dump.Options{}},
		{"extensions target", dump.ExtensionsTarget(), dump.Options{}},
		{"no schema", dump.Target{Kind: dump.SchemaKind}, dump.Options{}},
	}
	for _, v := range tests {
		_, err := dump.Args(dbConfig(), v.tgt, v.opts)
		require.Error(t, err, v.msg)
		assert.True(t, errcode.Is(err, errcode.InvalidDumpOptionsError), v.msg)
	}
}

func TestTableTarget_Invalid(t *testing.T) {
	_, err := dump.TableTarget("", tenant.MustParseName("t1"), `w"; DROP`)
	assert.True(t, errcode.Is(err, errcode.InvalidDumpOptionsError))
}

func TestOptions_Validate(t *testing.T) {
	schema := tenant.MustParseName("t1")
	assert.NoError(t, dump.Options{Append: true}.Validate(dump.ExtensionsTarget()))
	assert.Error(t, dump.Options{DataOnly: true}.Validate(dump.FunctionsTarget(schema)))
	assert.NoError(t, dump.Options{DataOnly: true}.Validate(dump.SchemaTarget("", schema)))
}

func TestEnv(t *testing.T) {
	assert.Equal(t, []string{"PGPASSWORD=secret", "PGSSLMODE=disable"},
		dump.Env(dbConfig()))
}

func TestTarget_Policy(t *testing.T) {
	schema := tenant.MustParseName("t1")
	tbl, err := dump.TableTarget("", schema, "items")
	require.NoError(t, err)

	tests := []struct {
		tgt     dump.Target
		pgDump  bool
		cleaned bool
		label   string
	}{
		{dump.SchemaTarget("", schema), true, true, "schema t1"},
		{tbl, true, true, "table t1.items"},
		{dump.FunctionsTarget(schema), false, true, "functions t1"},
		{dump.ExtensionsTarget(), false, false, "extensions"},
	}
	for _, v := range tests {
		assert.Equal(t, v.pgDump, v.tgt.UsesPgDump(), v.label)
		assert.Equal(t, v.cleaned, v.tgt.Cleaned(), v.label)
		assert.Equal(t, v.label, v.tgt.Label())
	}
}

func TestRenderFunctions(t *testing.T) {
	defs := []string{
		"CREATE OR REPLACE FUNCTION t1.f()\n RETURNS integer\n LANGUAGE sql\nAS $function$SELECT 1$function$\n",
		"",
		"CREATE OR REPLACE PROCEDURE t1.p()\n LANGUAGE sql\nAS $procedure$SELECT 1$procedure$;",
	}
	exp := "CREATE OR REPLACE FUNCTION t1.f()\n RETURNS integer\n LANGUAGE sql\nAS $function$SELECT 1$function$;\n\n" +
		"CREATE OR REPLACE PROCEDURE t1.p()\n LANGUAGE sql\nAS $procedure$SELECT 1$procedure$;\n\n"
	assert.Equal(t, exp, dump.RenderFunctions(defs))
	assert.Equal(t, "", dump.RenderFunctions(nil))
}

func TestRenderExtensions(t *testing.T) {
	res := dump.RenderExtensions([]string{"pg_trgm", "uuid-ossp"})
	assert.Equal(t,
		"CREATE EXTENSION IF NOT EXISTS \"pg_trgm\";\n"+
			"CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";\n", res)
}
