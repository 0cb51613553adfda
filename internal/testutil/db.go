package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/target/onboarding-portal/internal/migrate"
)

// DSN renders the test database URL, optionally pinned to schema.
func (e Env) DSN(schema string) string {
	q := url.Values{"sslmode": {e.DBSSLMode}}
	if schema != "" {
		q.Set("search_path", schema)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.DBUser, e.DBPassword),
		Host:     net.JoinHostPort(e.DBHost, strconv.Itoa(e.DBPort)),
		Path:     "/" + e.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// WithDB runs fn against a freshly migrated schema private to this test. The
// schema is dropped when the test ends.
func WithDB(t testing.TB, fn func(*sql.DB)) {
	t.Helper()
	fn(NewDB(t))
}

// NewDB creates a private schema, migrates it and returns a pool bound to it.
func NewDB(t testing.TB) *sql.DB {
	t.Helper()
	e := LoadEnv(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := sql.Open("pgx", e.DSN(""))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := admin.PingContext(ctx); err != nil {
		_ = admin.Close()
		unavailable(t, e.RequireInfra || e.RequireDB, "test database", err)
	}

	schema := schemaName()
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		_ = admin.Close()
		t.Fatalf("create schema %s: %v", schema, err)
	}

	db, err := sql.Open("pgx", e.DSN(schema))
	if err != nil {
		_ = admin.Close()
		t.Fatalf("open schema %s: %v", schema, err)
	}
	t.Cleanup(func() {
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer dropCancel()
		_ = db.Close()
		if _, err := admin.ExecContext(dropCtx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		_ = admin.Close()
	})

	if err := migrate.Run(ctx, db, nil); err != nil {
		t.Fatalf("migrate schema %s: %v", schema, err)
	}
	return db
}

func schemaName() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("test_%d", time.Now().UnixNano())
	}
	return "test_" + hex.EncodeToString(b)
}
