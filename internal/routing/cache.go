package routing

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedRouter wraps a Router with a redis-backed cache keyed on the ordered
// label pair. Only successful lookups are cached; a broken cache degrades to
// a direct provider call instead of failing the request.
type CachedRouter struct {
	next Router
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCachedRouter(next Router, rdb *redis.Client, ttl time.Duration) *CachedRouter {
	return &CachedRouter{next: next, rdb: rdb, ttl: ttl}
}

func (c *CachedRouter) Route(ctx context.Context, origin, destination string) (*Result, error) {
	key := cacheKey(origin, destination)

	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, key).Result()
		if err == nil {
			var res Result
			if err := json.Unmarshal([]byte(raw), &res); err == nil {
				return &res, nil
			}
		} else if err != redis.Nil {
			log.Printf("routing: cache read failed: %v", err)
		}
	}

	res, err := c.next.Route(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	if c.rdb != nil {
		if raw, err := json.Marshal(res); err == nil {
			if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				log.Printf("routing: cache write failed: %v", err)
			}
		}
	}
	return res, nil
}

func cacheKey(origin, destination string) string {
	return "route:" + strings.ToLower(origin) + "|" + strings.ToLower(destination)
}
