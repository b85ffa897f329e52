// Package redisad implements the catalog query cache on Redis. It plays
// the role the query cache played on the public pages: GET results are kept
// for a TTL and evicted when an admin mutation touches packages.
package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"atlas_travel/internal/adapters/observability"
	"atlas_travel/internal/domain"
)

type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

var _ domain.Cache = (*Cache)(nil)

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("catalog", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("catalog", "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("catalog", "set")
	return r.c.Set(ctx, key, b, ttl).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("catalog", "del")
	return r.c.Del(ctx, key).Err()
}
