package repository

import (
	"context"
	"testing"
	"time"

	"shoppy-store/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func TestRedisCatalogCache_RoundTrip(t *testing.T) {
	mr, client := newMiniredis(t)
	cache := NewRedisCatalogCache(client, "shoppy")
	ctx := context.Background()

	var miss []domain.Product
	found, err := cache.Get(ctx, "products:TITLE", &miss)
	if err != nil || found {
		t.Fatalf("expected a clean miss, got found=%v err=%v", found, err)
	}

	products := []domain.Product{{ID: "p1", Handle: "hat", Title: "Hat"}}
	if err := cache.Set(ctx, "products:TITLE", products, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if !mr.Exists("shoppy:catalog:products:TITLE") {
		t.Fatal("expected namespaced key in redis")
	}

	var hit []domain.Product
	found, err = cache.Get(ctx, "products:TITLE", &hit)
	if err != nil || !found {
		t.Fatalf("expected a hit, got found=%v err=%v", found, err)
	}
	if len(hit) != 1 || hit[0].Handle != "hat" {
		t.Errorf("unexpected cached value %+v", hit)
	}

	mr.FastForward(2 * time.Minute)
	found, _ = cache.Get(ctx, "products:TITLE", &hit)
	if found {
		t.Error("entry should expire after its ttl")
	}
}

func TestRedisCatalogCache_CorruptEntry(t *testing.T) {
	mr, client := newMiniredis(t)
	cache := NewRedisCatalogCache(client, "shoppy")

	mr.Set("shoppy:catalog:shop", "not json")

	var shop domain.Shop
	found, err := cache.Get(context.Background(), "shop", &shop)
	if err == nil || found {
		t.Errorf("expected decode error, got found=%v err=%v", found, err)
	}
}

func TestNoopCatalogCache(t *testing.T) {
	cache := NewNoopCatalogCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	var v string
	if found, _ := cache.Get(ctx, "k", &v); found {
		t.Error("noop cache must never hit")
	}
}
