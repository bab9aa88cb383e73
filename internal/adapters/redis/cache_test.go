package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "tour_service/internal/adapters/redis"
	"tour_service/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	var miss []domain.Tour
	ok, err := c.Get(ctx, "tours:list:20", &miss)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	in := []domain.Tour{{Title: "Komodo Island Hop", Price: 420, DurationDays: 3, Location: "Flores"}}
	if err := c.Set(ctx, "tours:list:20", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("tours:list:20"); ttl != 60*time.Second {
		t.Fatalf("unexpected ttl: %v", ttl)
	}

	var out []domain.Tour
	ok, err = c.Get(ctx, "tours:list:20", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].Title != "Komodo Island Hop" {
		t.Fatalf("unexpected cached value: %+v", out)
	}

	mr.FastForward(61 * time.Second)
	ok, _ = c.Get(ctx, "tours:list:20", &out)
	if ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_DelPrefix(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	for _, k := range []string{"tours:list:1", "tours:list:20", "tours:list:0"} {
		if err := c.Set(ctx, k, []string{"x"}, 60); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	_ = mr.Set("other:key", "keep")

	n, err := c.DelPrefix(ctx, "tours:list:")
	if err != nil {
		t.Fatalf("del prefix: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 deletions, got %d", n)
	}
	if !mr.Exists("other:key") {
		t.Fatalf("unrelated key was removed")
	}
	if mr.Exists("tours:list:20") {
		t.Fatalf("prefixed key survived")
	}
}
