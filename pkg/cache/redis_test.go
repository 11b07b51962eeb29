package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: srv.Addr(), Prefix: "tg:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	c.backoff = time.Millisecond
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestRedis(t)

	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Fatalf("Get(missing) = (hit=%v, %v), want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v1"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v1" {
		t.Fatalf("Get = (%q, %v, %v), want (v1, true, nil)", data, hit, err)
	}

	if !srv.Exists("tg:k") {
		t.Error("key was not stored under the prefix")
	}
	if got := srv.TTL("tg:k"); got != time.Minute {
		t.Errorf("TTL = %v, want 1m", got)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete = hit")
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestRedis(t)

	if err := c.Set(ctx, "short", []byte("x"), time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "forever", []byte("y"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := srv.TTL("tg:forever"); got != 0 {
		t.Errorf("TTL(forever) = %v, want no expiry", got)
	}

	srv.FastForward(2 * time.Second)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry still served")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl expired")
	}
}

func TestRedisCacheServerErrorNotRetryable(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestRedis(t)

	srv.SetError("ERR injected failure")
	err := c.Set(ctx, "k", []byte("v"), time.Minute)
	if err == nil {
		t.Fatal("Set = nil error, want server error")
	}
	if IsRetryable(err) || errors.Is(err, ErrBackend) {
		t.Errorf("server reply error classified as transport failure: %v", err)
	}

	srv.SetError("")
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Errorf("Set after recovery: %v", err)
	}
}

func TestRedisCacheServerGoneIsRetryable(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestRedis(t)

	srv.Close()

	_, _, err := c.Get(ctx, "k")
	if !IsRetryable(err) || !errors.Is(err, ErrBackend) {
		t.Errorf("Get with server gone = %v, want retryable ErrBackend", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); !IsRetryable(err) {
		t.Errorf("Set with server gone = %v, want retryable", err)
	}
}
