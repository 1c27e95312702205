package books

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "books:version"

// Cache keeps book listings in Redis behind a version counter. A version
// bump on mutation invalidates every cached listing at once without key
// scanning.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Fetch returns the cached listing for the filter, if present.
func (c *Cache) Fetch(ctx context.Context, filter ListFilter) ([]Book, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	key, err := c.key(ctx, filter)
	if err != nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var list []Book
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}

// Store caches the listing for the filter under the current version.
func (c *Cache) Store(ctx context.Context, filter ListFilter, list []Book) error {
	if c == nil || c.client == nil {
		return nil
	}
	key, err := c.key(ctx, filter)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate bumps the version, orphaning all cached listings.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

func (c *Cache) key(ctx context.Context, filter ListFilter) (string, error) {
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		ver = 0
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("books:list:v%d:%s", ver, filterKey(filter)), nil
}

func filterKey(f ListFilter) string {
	part := func(v any) string {
		switch val := v.(type) {
		case *float64:
			if val == nil {
				return "-"
			}
			return fmt.Sprintf("%g", *val)
		case *int:
			if val == nil {
				return "-"
			}
			return fmt.Sprintf("%d", *val)
		}
		return "-"
	}
	return fmt.Sprintf("%s:%s:%s:%s",
		part(f.MinPrice), part(f.MaxPrice), part(f.MinRate), part(f.MaxRate))
}
