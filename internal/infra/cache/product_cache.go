package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	notFoundMarker = "notfound"
	notFoundTTL    = time.Minute
)

// CachedProductRepository は商品1件取得をRedisで読み通しキャッシュする。
// Redisが落ちていてもDBにフォールバックする
type CachedProductRepository struct {
	next  repo.ProductRepository
	redis *redis.Client
	ttl   time.Duration
	log   *slog.Logger
}

func NewCachedProductRepository(next repo.ProductRepository, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *CachedProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedProductRepository{
		next:  next,
		redis: rdb,
		ttl:   ttl,
		log:   log,
	}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *CachedProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	key := productKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return model.Product{}, repo.ErrNotFound
		}
		var p model.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return p, nil
		}
		c.log.WarnContext(ctx, "broken product cache entry", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		c.log.WarnContext(ctx, "redis get failed, falling back to db", "key", key, "error", err)
	}

	p, err := c.next.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		if setErr := c.redis.Set(ctx, key, notFoundMarker, notFoundTTL).Err(); setErr != nil {
			c.log.WarnContext(ctx, "cache notfound failed", "key", key, "error", setErr)
		}
		return model.Product{}, err
	}
	if err != nil {
		return model.Product{}, err
	}

	if b, err := json.Marshal(p); err == nil {
		if setErr := c.redis.Set(ctx, key, b, c.ttl).Err(); setErr != nil {
			c.log.WarnContext(ctx, "cache product failed", "key", key, "error", setErr)
		}
	}
	return p, nil
}

// 一覧はキャッシュしない
func (c *CachedProductRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	return c.next.List(ctx, q)
}

func (c *CachedProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	created, err := c.next.Create(ctx, p)
	if err != nil {
		return model.Product{}, err
	}
	//notfoundが残っていると作成直後に見えなくなる
	c.invalidate(ctx, created.ID)
	return created, nil
}

func (c *CachedProductRepository) Update(ctx context.Context, id int64, patch repo.ProductPatch) (model.Product, error) {
	p, err := c.next.Update(ctx, id, patch)
	c.invalidate(ctx, id)
	return p, err
}

func (c *CachedProductRepository) Delete(ctx context.Context, id int64) error {
	err := c.next.Delete(ctx, id)
	c.invalidate(ctx, id)
	return err
}

func (c *CachedProductRepository) invalidate(ctx context.Context, id int64) {
	if err := c.redis.Del(ctx, productKey(id)).Err(); err != nil {
		c.log.WarnContext(ctx, "delete product cache failed", "key", productKey(id), "error", err)
	}
}
