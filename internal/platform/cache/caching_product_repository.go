// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"gallery_backend/internal/domain/entity"
	"gallery_backend/internal/feature/catalog/usecase"
)

// CachingProductRepository decorates a ProductRepository with Redis caching of
// the public catalog listing. Single-product reads go straight to the inner
// repository because cart and checkout rely on the live status.
type CachingProductRepository struct {
	inner     usecase.ProductRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProductRepository = (*CachingProductRepository)(nil)

// NewCachingProductRepository decorates a ProductRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "catalog".
// A nil rdb disables caching.
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProductRepository, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "catalog"
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingProductRepository) Update(ctx context.Context, id string, d entity.ProductDetails) error {
	if err := c.inner.Update(ctx, id, d); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingProductRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	return c.inner.FindByID(ctx, id)
}

// ListAvailable checks the cache first then falls back to the inner repository.
func (c *CachingProductRepository) ListAvailable(ctx context.Context) ([]entity.Product, error) {
	if c.rdb == nil {
		return c.inner.ListAvailable(ctx)
	}

	key := c.cacheKey("available")

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Invalidate drops every cached catalog entry. Checkout and backup import call
// it after changing product state behind this decorator's back.
func (c *CachingProductRepository) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

// invalidate is the best-effort form used after writes that already succeeded.
func (c *CachingProductRepository) invalidate(ctx context.Context) {
	if err := c.Invalidate(ctx); err != nil {
		slog.Warn("catalog cache invalidation failed", "error", err)
	}
}

func (c *CachingProductRepository) cacheKey(parts ...string) string {
	for i := range parts {
		parts[i] = safe(parts[i])
	}
	return c.namespace + ":" + strings.Join(parts, ":")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingProductRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
