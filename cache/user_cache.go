// Package cache is a read-through cache for shaped user payloads.
package cache

import (
	"context"
	"time"

	rediscache "github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"
)

const defaultTTL = 24 * time.Hour

// UserCache caches shaped user documents by id. A nil *UserCache is valid
// and disables caching.
type UserCache struct {
	c   *rediscache.Cache
	ttl time.Duration
}

// New builds a UserCache from a redis:// URL. An empty URL disables caching.
func New(redisURL string) (*UserCache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &UserCache{
		c: rediscache.New(&rediscache.Options{
			Redis:      redis.NewClient(opts),
			LocalCache: rediscache.NewTinyLFU(1000, time.Minute),
		}),
		ttl: defaultTTL,
	}, nil
}

func (u *UserCache) Get(ctx context.Context, id string) (map[string]any, bool) {
	if u == nil {
		return nil, false
	}
	var doc map[string]any
	if err := u.c.Get(ctx, id, &doc); err != nil {
		return nil, false
	}
	return doc, true
}

func (u *UserCache) Set(ctx context.Context, id string, doc map[string]any) {
	if u == nil {
		return
	}
	_ = u.c.Set(&rediscache.Item{
		Ctx:   ctx,
		Key:   id,
		Value: doc,
		TTL:   u.ttl,
	})
}

func (u *UserCache) Invalidate(ctx context.Context, id string) {
	if u == nil {
		return
	}
	_ = u.c.Delete(ctx, id)
}
