package cache

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newRedisCache(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c := New(context.Background(), mr.Addr(), "", 0, slog.Default())
	if c.redis == nil {
		t.Fatal("expected redis-backed cache")
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisSetGetDelete(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", payload{Name: "orders", Count: 3}, time.Minute)

	var got payload
	if !c.Get(ctx, "k", &got) {
		t.Fatal("Get = miss, want hit")
	}
	if got.Name != "orders" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}

	c.Delete(ctx, "k")
	if c.Get(ctx, "k", &got) {
		t.Error("Get after Delete = hit, want miss")
	}
}

func TestRedisTTLExpiry(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	c.Set(ctx, "short", payload{Count: 1}, 30*time.Second)

	var got payload
	if !c.Get(ctx, "short", &got) {
		t.Fatal("Get before expiry = miss")
	}

	mr.FastForward(time.Minute)

	if c.Get(ctx, "short", &got) {
		t.Error("Get after expiry = hit, want miss")
	}
}

func TestMemoryFallback(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, "", "", 0, slog.Default())
	if c.redis != nil {
		t.Fatal("expected memory fallback")
	}

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := base
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", payload{Count: 5}, time.Minute)

	var got payload
	if !c.Get(ctx, "k", &got) || got.Count != 5 {
		t.Fatalf("memory Get = %+v, want hit with Count=5", got)
	}

	now = base.Add(2 * time.Minute)
	if c.Get(ctx, "k", &got) {
		t.Error("memory Get after TTL = hit, want miss")
	}

	c.Set(ctx, "k2", payload{Count: 6}, time.Minute)
	c.Delete(ctx, "k2")
	if c.Get(ctx, "k2", &got) {
		t.Error("memory Get after Delete = hit, want miss")
	}
}

func TestGetMissOnAbsent(t *testing.T) {
	c, _ := newRedisCache(t)

	var got payload
	if c.Get(context.Background(), "absent", &got) {
		t.Error("Get(absent) = hit, want miss")
	}
}
