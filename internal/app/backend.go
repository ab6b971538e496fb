package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/namax/internal/config"
	"github.com/MrSnakeDoc/namax/internal/logger"
	"github.com/MrSnakeDoc/namax/internal/redis"
	"github.com/MrSnakeDoc/namax/internal/store"
	redisstore "github.com/MrSnakeDoc/namax/internal/store/redis"
	"github.com/MrSnakeDoc/namax/internal/store/sqlite"
)

// Backend is the opened collection storage.
type Backend struct {
	Name  string
	KV    store.KeyValue
	Ping  store.Pinger
	close func() error
}

// Close releases the backend connection.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the store selected by cfg.Store.
func OpenBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (*Backend, error) {
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("memory store selected, collections are lost on restart")
		mem := store.NewMemory()
		return &Backend{Name: cfg.Store, KV: mem, Ping: mem}, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info("sqlite store opened", logger.String("path", cfg.SQLitePath))
		return &Backend{Name: cfg.Store, KV: db, Ping: db, close: db.Close}, nil

	case config.StoreRedis:
		log.Info("connecting to redis", logger.String("addr", cfg.RedisAddr))
		client, err := redis.New(ctx, redis.OptionsFromConfig(cfg), log)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		rs := redisstore.NewStore(client)
		return &Backend{Name: cfg.Store, KV: rs, Ping: rs, close: closeRedis(client)}, nil

	default:
		return nil, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
	}
}

func closeRedis(c *goredis.Client) func() error {
	return func() error { return c.Close() }
}
