package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/stopover/pkg/cache"
	"github.com/matzehuels/stopover/pkg/config"
	"github.com/matzehuels/stopover/pkg/store"
)

// openCache returns the configured result cache, wrapped with the metrics
// hooks. Failures fall back to a NullCache so a search can still run.
func (c *CLI) openCache(ctx context.Context, cfg *config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	backend, err := newCache(ctx, cfg)
	if err != nil {
		c.Logger.Warn("result cache disabled", "backend", cfg.Cache.Backend, "err", err)
		return cache.NewNullCache()
	}
	return cache.Instrument(backend, cfg.Cache.Backend)
}

func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	case config.BackendFile:
		dir, err := cacheDir(cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}

// openStore returns the configured run store, wrapped with the metrics
// hooks. Failures fall back to a NullStore.
func (c *CLI) openStore(ctx context.Context, cfg *config.Config) store.Store {
	backend, err := newStore(ctx, cfg)
	if err != nil {
		c.Logger.Warn("run history disabled", "backend", cfg.Store.Backend, "err", err)
		return store.NullStore{}
	}
	return store.Instrument(backend, cfg.Store.Backend)
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendNone:
		return store.NullStore{}, nil
	case config.BackendMongo:
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.MongoDB)
	case config.BackendFile:
		return store.NewFileStore(cfg.Store.Dir)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// cacheDir returns cache.dir, or the per-user default when it is unset.
func cacheDir(cfg *config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
