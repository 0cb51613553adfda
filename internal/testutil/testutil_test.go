package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	for _, k := range []string{"TEST_DB_HOST", "TEST_DB_PORT", "TEST_REDIS_ADDR", "TEST_REDIS_DB"} {
		t.Setenv(k, "")
	}
	e := LoadEnv(t)
	assert.Equal(t, "localhost", e.DBHost)
	assert.Equal(t, 55432, e.DBPort)
	assert.Equal(t, "localhost:56379", e.RedisAddr)
	assert.Equal(t, 15, e.RedisDB)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "postgres")
	t.Setenv("TEST_DB_PORT", "5432")
	t.Setenv("TEST_REQUIRE_INFRA", "true")
	e := LoadEnv(t)
	assert.Equal(t, "postgres", e.DBHost)
	assert.Equal(t, 5432, e.DBPort)
	assert.True(t, e.RequireInfra)
}

func TestEnv_DSN(t *testing.T) {
	e := Env{DBHost: "db", DBPort: 5432, DBUser: "u", DBPassword: "p@ss", DBName: "portal", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/portal?sslmode=disable", e.DSN(""))
	assert.Equal(t, "postgres://u:p%40ss@db:5432/portal?search_path=test_ab&sslmode=disable", e.DSN("test_ab"))
}

func TestSchemaName(t *testing.T) {
	a, b := schemaName(), schemaName()
	assert.True(t, strings.HasPrefix(a, "test_"))
	assert.NotEqual(t, a, b)
}
