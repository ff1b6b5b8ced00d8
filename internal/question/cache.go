package question

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL = 10 * time.Minute
	categoriesKey   = "trivia:categories"
)

// Cache provides Redis-backed category caching to offload the database.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CategoryCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) (Categories, error) {
	data, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var categories Categories
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Cache) Set(ctx context.Context, categories Categories) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoriesKey, data, c.ttl).Err()
}
