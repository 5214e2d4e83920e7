// Package app assembles a checkout session from configuration.
package app

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/checkout"
	"storefront/pkg/config"
	"storefront/pkg/order/memory"
	"storefront/pkg/orderlog"
	"storefront/pkg/orderlog/file"
	"storefront/pkg/orderlog/postgres"
	"storefront/pkg/orderlog/redis"
)

// App bundles the session with the resources it owns.
type App struct {
	Session *checkout.Session
	sink    orderlog.Sink
	log     *zap.Logger
}

// New builds the seeded catalog, the cart, the ledger and the order log sink
// described by cfg. The sink is opened lazily on the first checkout.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cat := catalog.New(cfg.Store.CatalogCapacity)
	if err := catalog.Seed(cat, catalog.DefaultItems()); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	sink, err := NewSink(cfg.OrderLog)
	if err != nil {
		return nil, err
	}

	log.Info("storefront ready",
		zap.Int("products", cat.Len()),
		zap.String("order_log", cfg.OrderLog.Driver),
		zap.Int("cart_max_lines", cfg.Store.CartMaxLines),
		zap.Int("ledger_capacity", cfg.Store.LedgerCapacity))

	return &App{
		Session: checkout.New(cat, cart.New(cfg.Store.CartMaxLines), memory.New(cfg.Store.LedgerCapacity), sink, log),
		sink:    sink,
		log:     log,
	}, nil
}

// NewSink returns the order log sink for the configured driver.
func NewSink(cfg config.OrderLogConfig) (orderlog.Sink, error) {
	switch cfg.Driver {
	case config.DriverFile:
		return file.New(cfg.Path), nil
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open order log database: %w", err)
		}
		return postgres.New(db), nil
	case config.DriverRedis:
		return redis.New(goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr}), cfg.RedisKey), nil
	case config.DriverNone:
		return orderlog.Discard{}, nil
	default:
		return nil, fmt.Errorf("unknown order log driver %q", cfg.Driver)
	}
}

// Close releases the order log sink.
func (a *App) Close() error {
	if err := a.sink.Close(); err != nil {
		a.log.Error("close order log", zap.Error(err))
		return err
	}
	return nil
}
