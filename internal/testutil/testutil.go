// Package testutil connects integration tests to the Postgres and Redis
// instances of the local test stack. Tests skip when the stack is down unless
// TEST_REQUIRE_INFRA (or the per-service TEST_REQUIRE_* flag) is set.
package testutil

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the test stack location, read from TEST_* variables.
type Env struct {
	DBHost     string `env:"TEST_DB_HOST"     envDefault:"localhost"`
	DBPort     int    `env:"TEST_DB_PORT"     envDefault:"55432"`
	DBUser     string `env:"TEST_DB_USER"     envDefault:"portal"`
	DBPassword string `env:"TEST_DB_PASSWORD" envDefault:"portal"`
	DBName     string `env:"TEST_DB_NAME"     envDefault:"portal"`
	DBSSLMode  string `env:"TEST_DB_SSL_MODE" envDefault:"disable"`

	RedisAddr string `env:"TEST_REDIS_ADDR" envDefault:"localhost:56379"`
	RedisDB   int    `env:"TEST_REDIS_DB"   envDefault:"15"`

	RequireInfra bool `env:"TEST_REQUIRE_INFRA"`
	RequireDB    bool `env:"TEST_REQUIRE_DB"`
	RequireRedis bool `env:"TEST_REQUIRE_REDIS"`
}

// LoadEnv reads the test stack settings, failing t on malformed values.
func LoadEnv(t testing.TB) Env {
	t.Helper()
	e, err := env.ParseAs[Env]()
	if err != nil {
		t.Fatalf("parse test env: %v", err)
	}
	return e
}

// unavailable skips t, or fails it when the service is required.
func unavailable(t testing.TB, required bool, what string, err error) {
	t.Helper()
	if required {
		t.Fatalf("%s unavailable: %v", what, err)
	}
	t.Skipf("%s unavailable: %v", what, err)
}

// TestTime is the fixed instant integration tests stamp rows with.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}
