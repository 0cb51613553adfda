package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns a client on the test Redis database, flushed before use
// and closed when the test ends.
func NewRedis(t testing.TB) *redis.Client {
	t.Helper()
	e := LoadEnv(t)
	client := redis.NewClient(&redis.Options{Addr: e.RedisAddr, DB: e.RedisDB})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		unavailable(t, e.RequireInfra || e.RequireRedis, "test redis at "+e.RedisAddr, err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("flush test redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
