package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"
	"github.com/J-Ferr/ecommerce-api/internal/logger"
	repo "github.com/J-Ferr/ecommerce-api/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 呼ばれた回数だけ数える簡易リポジトリ
type countingRepo struct {
	products map[int64]model.Product
	finds    int
}

func (r *countingRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (r *countingRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	r.finds++
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *countingRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = int64(len(r.products) + 1)
	r.products[p.ID] = p
	return p, nil
}

func (r *countingRepo) Update(ctx context.Context, id int64, patch repo.ProductPatch) (model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	if patch.PriceCents != nil {
		p.PriceCents = *patch.PriceCents
	}
	r.products[id] = p
	return p, nil
}

func (r *countingRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func newTestCache(t *testing.T, next repo.ProductRepository) (*CachedProductRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCachedProductRepository(next, rdb, time.Minute, logger.Discard()), mr
}

func TestFindByID_ReadThrough(t *testing.T) {
	next := &countingRepo{products: map[int64]model.Product{
		1: {ID: 1, Name: "A", PriceCents: 500},
	}}
	c, mr := newTestCache(t, next)
	ctx := context.Background()

	p, err := c.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), p.PriceCents)

	p, err = c.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)
	assert.Equal(t, 1, next.finds)

	raw, err := mr.Get("product:1")
	require.NoError(t, err)
	var cached model.Product
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, int64(1), cached.ID)
}

func TestFindByID_NegativeCache(t *testing.T) {
	next := &countingRepo{products: map[int64]model.Product{}}
	c, mr := newTestCache(t, next)
	ctx := context.Background()

	_, err := c.FindByID(ctx, 9)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	_, err = c.FindByID(ctx, 9)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.Equal(t, 1, next.finds)

	raw, err := mr.Get("product:9")
	require.NoError(t, err)
	assert.Equal(t, "notfound", raw)
}

func TestUpdate_Invalidates(t *testing.T) {
	next := &countingRepo{products: map[int64]model.Product{
		1: {ID: 1, Name: "A", PriceCents: 500},
	}}
	c, _ := newTestCache(t, next)
	ctx := context.Background()

	_, err := c.FindByID(ctx, 1)
	require.NoError(t, err)

	price := int64(900)
	_, err = c.Update(ctx, 1, repo.ProductPatch{PriceCents: &price})
	require.NoError(t, err)

	p, err := c.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(900), p.PriceCents)
	assert.Equal(t, 2, next.finds)
}

func TestDelete_Invalidates(t *testing.T) {
	next := &countingRepo{products: map[int64]model.Product{
		1: {ID: 1, Name: "A", PriceCents: 500},
	}}
	c, _ := newTestCache(t, next)
	ctx := context.Background()

	_, err := c.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, 1))

	_, err = c.FindByID(ctx, 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCreate_ClearsNotFoundMarker(t *testing.T) {
	next := &countingRepo{products: map[int64]model.Product{}}
	c, _ := newTestCache(t, next)
	ctx := context.Background()

	_, err := c.FindByID(ctx, 1)
	require.ErrorIs(t, err, repo.ErrNotFound)

	created, err := c.Create(ctx, model.Product{Name: "New", PriceCents: 100})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	p, err := c.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "New", p.Name)
}

func TestFindByID_RedisDownFallsBackToDB(t *testing.T) {
	next := &countingRepo{products: map[int64]model.Product{
		1: {ID: 1, Name: "A", PriceCents: 500},
	}}
	c, mr := newTestCache(t, next)
	mr.Close()

	p, err := c.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)
}
