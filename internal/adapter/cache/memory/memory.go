package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"memoapp/internal/core/domain"
	"memoapp/internal/core/port"
)

type memoryRepository struct {
	cache *gocache.Cache
}

// NewMemoryRepository is the in-process fallback when no REDIS_URL is
// configured.
func NewMemoryRepository() port.CacheRepository {
	return &memoryRepository{
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (c *memoryRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *memoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := c.cache.Get(key)

	if !ok {
		return nil, domain.ErrNotFound
	}

	return value.([]byte), nil
}

func (c *memoryRepository) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

func (c *memoryRepository) Close() error {
	c.cache.Flush()
	return nil
}
