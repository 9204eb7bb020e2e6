package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pollos/internal/config"
	contactrepo "pollos/internal/contact/repository"
	contactservice "pollos/internal/contact/service"
	mongostore "pollos/internal/infrastructure/mongo"
	"pollos/internal/infrastructure/mysql"
	"pollos/internal/infrastructure/redis"
	"pollos/internal/infrastructure/sqlite"
	orderrepo "pollos/internal/order/repository"
	orderservice "pollos/internal/order/service"
	productrepo "pollos/internal/product/repository"
	productservice "pollos/internal/product/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Backend bundles the repositories of the configured store driver.
type Backend struct {
	Orders   orderservice.OrderRepository
	Messages contactservice.MessageRepository
	Products productservice.ProductRepository

	pingers []func(ctx context.Context) error
	closers []func(ctx context.Context) error
}

// Open connects to the store selected by STORE_DRIVER and, when REDIS_ADDR is
// set, puts the order history behind the cache. An unreachable cache is
// skipped with a warning; an unreachable store is an error.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	var (
		b   *Backend
		err error
	)

	switch cfg.Store.Driver {
	case config.DriverMySQL:
		var db *sql.DB
		if db, err = mysql.NewConnection(ctx, cfg.Database); err == nil {
			b = newSQLBackend(db)
		}
	case config.DriverSQLite:
		var db *sql.DB
		if db, err = sqlite.NewConnection(ctx, cfg.SQLite); err == nil {
			b = newSQLBackend(db)
		}
	case config.DriverMongo:
		b, err = openMongo(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("store connected", zap.String("driver", cfg.Store.Driver))

	if cfg.Cache.Enabled() {
		b.attachCache(ctx, cfg.Cache, logger)
	}

	return b, nil
}

func newSQLBackend(db *sql.DB) *Backend {
	return &Backend{
		Orders:   orderrepo.NewSQLOrderRepository(db),
		Messages: contactrepo.NewSQLMessageRepository(db),
		Products: productrepo.NewSQLProductRepository(db),
		pingers:  []func(ctx context.Context) error{db.PingContext},
		closers:  []func(ctx context.Context) error{func(context.Context) error { return db.Close() }},
	}
}

func openMongo(ctx context.Context, cfg config.MongoConfig) (*Backend, error) {
	client, db, err := mongostore.NewConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Backend{
		Orders:   orderrepo.NewMongoOrderRepository(db.Collection(mongostore.OrdersCollection)),
		Messages: contactrepo.NewMongoMessageRepository(db.Collection(mongostore.MessagesCollection)),
		Products: productrepo.NewMongoProductRepository(db.Collection(mongostore.ProductsCollection)),
		pingers: []func(ctx context.Context) error{
			func(ctx context.Context) error { return client.Ping(ctx, nil) },
		},
		closers: []func(ctx context.Context) error{client.Disconnect},
	}, nil
}

func (b *Backend) attachCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) {
	cache := redis.NewCache(cfg)
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("order cache unavailable, continuing without it",
			zap.String("addr", cfg.Addr),
			zap.Error(err),
		)
		_ = cache.Close()
		return
	}

	b.Orders = orderrepo.NewCachedOrderRepository(b.Orders, cache, logger)
	b.pingers = append(b.pingers, cache.Ping)
	b.closers = append(b.closers, func(context.Context) error { return cache.Close() })
	logger.Info("order cache enabled", zap.String("addr", cfg.Addr), zap.Duration("ttl", cfg.TTL))
}

// Ping checks every backing service concurrently.
func (b *Backend) Ping(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, ping := range b.pingers {
		g.Go(func() error { return ping(ctx) })
	}
	return g.Wait()
}

func (b *Backend) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
