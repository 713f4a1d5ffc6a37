//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Run with: STOPOVER_TEST_REDIS=localhost:6379 go test -tags integration ./pkg/cache
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("STOPOVER_TEST_REDIS")
	if addr == "" {
		t.Skip("STOPOVER_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr, Prefix: "stopover-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	t.Cleanup(func() { c.Clear(ctx) })

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get(missing) hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if data, hit, err := c.Get(ctx, "k"); !hit || err != nil || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Clear")
	}
}
