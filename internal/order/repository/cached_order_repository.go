package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pollos/internal/domain"

	"go.uber.org/zap"
)

const (
	generationKey  = "orders:gen"
	phoneKeyPrefix = "orders:phone:"
)

type Store interface {
	Create(ctx context.Context, order domain.Order) (string, error)
	FindByPhone(ctx context.Context, phone string) ([]domain.Order, error)
	UpdateComment(ctx context.Context, id string, comment string) error
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value any) error
	Counter(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// CachedOrderRepository serves phone lookups from a cache. Entries are keyed
// by a generation counter that every write bumps, so a lookup that loaded
// from the store before a write can only fill a generation nobody reads
// anymore. Cache failures are logged and never fail the call.
type CachedOrderRepository struct {
	next   Store
	cache  Cache
	logger *zap.Logger
}

func NewCachedOrderRepository(next Store, cache Cache, logger *zap.Logger) *CachedOrderRepository {
	return &CachedOrderRepository{next: next, cache: cache, logger: logger}
}

func phoneKey(generation int64, phone string) string {
	return fmt.Sprintf("%s%d:%s", phoneKeyPrefix, generation, phone)
}

func (r *CachedOrderRepository) Create(ctx context.Context, order domain.Order) (string, error) {
	id, err := r.next.Create(ctx, order)
	if err != nil {
		return "", err
	}

	r.invalidate(ctx, zap.String("phone", order.Phone))
	return id, nil
}

func (r *CachedOrderRepository) FindByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	if phone == "" {
		return []domain.Order{}, nil
	}

	// The generation must be read before the store.
	generation, err := r.cache.Counter(ctx, generationKey)
	if err != nil {
		r.logger.Warn("order cache generation read failed", zap.Error(err))
		return r.next.FindByPhone(ctx, phone)
	}

	key := phoneKey(generation, phone)
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("order cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		var orders []domain.Order
		if err := json.Unmarshal(data, &orders); err == nil {
			return orders, nil
		}
		r.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	}

	orders, err := r.next.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, orders); err != nil {
		r.logger.Warn("order cache write failed", zap.String("key", key), zap.Error(err))
	}

	return orders, nil
}

// UpdateComment retires every cached history since the order's phone is not
// known from its id alone.
func (r *CachedOrderRepository) UpdateComment(ctx context.Context, id string, comment string) error {
	if err := r.next.UpdateComment(ctx, id, comment); err != nil {
		return err
	}

	r.invalidate(ctx, zap.String("orderId", id))
	return nil
}

func (r *CachedOrderRepository) invalidate(ctx context.Context, field zap.Field) {
	if _, err := r.cache.Incr(ctx, generationKey); err != nil {
		r.logger.Error("order cache invalidation failed, entries may be stale until they expire",
			field,
			zap.Error(err),
		)
	}
}
