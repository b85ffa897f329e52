package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "atlas_travel/internal/adapters/redis"
	"atlas_travel/internal/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var out []domain.Package
	ok, err := c.Get(ctx, "packages:all", &out)
	if err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	in := []domain.Package{{ID: "p1", Name: "Bali Escape", Price: 20000, Active: true}}
	if err := c.Set(ctx, "packages:all", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	ok, err = c.Get(ctx, "packages:all", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].Name != "Bali Escape" {
		t.Fatalf("unexpected cached value: %+v", out)
	}

	if err := c.Del(ctx, "packages:all"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ = c.Get(ctx, "packages:all", &out); ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "package:p1", domain.Package{ID: "p1"}, time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var out domain.Package
	if ok, _ := c.Get(ctx, "package:p1", &out); ok {
		t.Fatalf("expected entry to have expired")
	}
}
