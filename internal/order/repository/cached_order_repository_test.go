package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pollos/internal/domain"
	apperrors "pollos/internal/errors"
	"pollos/internal/testutil"
)

type memoryCache struct {
	entries  map[string][]byte
	counters map[string]int64
	getErr   error
	incrErr  error
	sets     int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, counters: map[string]int64{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *memoryCache) Counter(_ context.Context, key string) (int64, error) {
	return c.counters[key], nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	if c.incrErr != nil {
		return 0, c.incrErr
	}
	c.counters[key]++
	return c.counters[key], nil
}

// pausingStore runs afterLoad once, between loading a history from the
// wrapped store and returning it.
type pausingStore struct {
	Store
	afterLoad func()
}

func (s *pausingStore) FindByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	orders, err := s.Store.FindByPhone(ctx, phone)
	if s.afterLoad != nil {
		hook := s.afterLoad
		s.afterLoad = nil
		hook()
	}
	return orders, err
}

func newCachedRepo(t *testing.T) (*CachedOrderRepository, *memoryCache) {
	cache := newMemoryCache()
	repo := NewCachedOrderRepository(NewSQLOrderRepository(testutil.SetupTestDB(t)), cache, zap.NewNop())
	return repo, cache
}

func TestCachedOrderRepository_FindByPhone_PopulatesCache(t *testing.T) {
	repo, cache := newCachedRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newOrder("ana", "5551234", time.Now()))
	require.NoError(t, err)

	first, err := repo.FindByPhone(ctx, "5551234")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Contains(t, cache.entries, "orders:phone:1:5551234")

	second, err := repo.FindByPhone(ctx, "5551234")
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 1, cache.sets)
}

func TestCachedOrderRepository_CreateBumpsGeneration(t *testing.T) {
	repo, cache := newCachedRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newOrder("ana", "5551234", time.Now()))
	require.NoError(t, err)
	_, err = repo.FindByPhone(ctx, "5551234")
	require.NoError(t, err)

	_, err = repo.Create(ctx, newOrder("ana", "5551234", time.Now()))
	require.NoError(t, err)
	assert.Equal(t, int64(2), cache.counters[generationKey])

	orders, err := repo.FindByPhone(ctx, "5551234")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Contains(t, cache.entries, "orders:phone:2:5551234")
}

func TestCachedOrderRepository_WriteDuringLoadIsNotHidden(t *testing.T) {
	cache := newMemoryCache()
	store := &pausingStore{Store: NewSQLOrderRepository(testutil.SetupTestDB(t))}
	repo := NewCachedOrderRepository(store, cache, zap.NewNop())
	ctx := context.Background()

	store.afterLoad = func() {
		_, err := repo.Create(ctx, newOrder("ana", "555", time.Now()))
		require.NoError(t, err)
	}

	// This lookup loaded before the order existed.
	stale, err := repo.FindByPhone(ctx, "555")
	require.NoError(t, err)
	assert.Empty(t, stale)

	orders, err := repo.FindByPhone(ctx, "555")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCachedOrderRepository_CommentDuringLoadIsNotHidden(t *testing.T) {
	cache := newMemoryCache()
	store := &pausingStore{Store: NewSQLOrderRepository(testutil.SetupTestDB(t))}
	repo := NewCachedOrderRepository(store, cache, zap.NewNop())
	ctx := context.Background()

	id, err := repo.Create(ctx, newOrder("ana", "555", time.Now()))
	require.NoError(t, err)

	store.afterLoad = func() {
		require.NoError(t, repo.UpdateComment(ctx, id, "Sin cebolla"))
	}

	_, err = repo.FindByPhone(ctx, "555")
	require.NoError(t, err)

	orders, err := repo.FindByPhone(ctx, "555")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Sin cebolla", orders[0].Comment)
}

func TestCachedOrderRepository_UpdateCommentBumpsGeneration(t *testing.T) {
	repo, cache := newCachedRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, newOrder("ana", "5551234", time.Now()))
	require.NoError(t, err)
	_, err = repo.FindByPhone(ctx, "5551234")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateComment(ctx, id, "Sin cebolla"))
	assert.Equal(t, int64(2), cache.counters[generationKey])

	orders, err := repo.FindByPhone(ctx, "5551234")
	require.NoError(t, err)
	assert.Equal(t, "Sin cebolla", orders[0].Comment)
}

func TestCachedOrderRepository_UpdateComment_NotFoundKeepsGeneration(t *testing.T) {
	repo, cache := newCachedRepo(t)

	err := repo.UpdateComment(context.Background(), "missing", "x")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, int64(0), cache.counters[generationKey])
}

func TestCachedOrderRepository_CacheErrorFallsThrough(t *testing.T) {
	repo, cache := newCachedRepo(t)
	ctx := context.Background()
	cache.getErr = errors.New("redis down")
	cache.incrErr = errors.New("redis down")

	_, err := repo.Create(ctx, newOrder("ana", "5551234", time.Now()))
	require.NoError(t, err)

	orders, err := repo.FindByPhone(ctx, "5551234")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCachedOrderRepository_EmptyPhone(t *testing.T) {
	repo, cache := newCachedRepo(t)

	orders, err := repo.FindByPhone(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, cache.entries)
}

func TestCachedOrderRepository_UsesCachedValue(t *testing.T) {
	repo, cache := newCachedRepo(t)
	cached := []domain.Order{{ID: "cached", Phone: "777"}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	cache.entries["orders:phone:0:777"] = data

	orders, err := repo.FindByPhone(context.Background(), "777")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "cached", orders[0].ID)
}
