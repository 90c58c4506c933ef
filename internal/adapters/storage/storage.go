// Package storage elige el Record Store según la configuración y le aplica
// instrumentación y cache.
package storage

import (
	"context"
	"errors"
	"fmt"

	"dogs-api/internal/adapters/cache"
	"dogs-api/internal/adapters/storage/instrumented"
	"dogs-api/internal/adapters/storage/memory"
	pg "dogs-api/internal/adapters/storage/postgres"
	"dogs-api/internal/adapters/storage/sqlite"
	"dogs-api/internal/domain/dogs"
	"dogs-api/internal/platform/config"
	"dogs-api/internal/platform/logger"
	"dogs-api/internal/platform/metrics"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Backend es el repo listo para usar más los recursos a cerrar al apagar.
type Backend struct {
	Repo    dogs.Repository
	closers []func() error
}

func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open abre el store configurado. Si Redis no responde, sigue sin cache.
func Open(ctx context.Context, cfg config.Config, log logger.Logger, m *metrics.Manager) (*Backend, error) {
	b := &Backend{}

	switch cfg.StorageDriver {
	case config.DriverMemory, "":
		b.Repo = memory.NewDogRepo()
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, db.Close)
		b.Repo = sqlite.NewDogsRepo(db)
	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		b.closers = append(b.closers, db.Close)
		b.Repo = pg.NewDogsRepo(db)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}

	log.Info("record store ready", map[string]any{"driver": cfg.StorageDriver})

	if m != nil {
		b.Repo = instrumented.NewDogsRepo(b.Repo, m)
	}

	if cfg.CacheEnabled {
		rdb, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TLS:      cfg.RedisTLS,
		})
		if err != nil {
			log.Warn("cache disabled", map[string]any{"error": err.Error()})
			return b, nil
		}
		b.closers = append(b.closers, rdb.Close)
		b.Repo = cache.NewDogsRepo(b.Repo, cache.NewRedisStore(rdb), cfg.CacheTTL, log, m)
		log.Info("redis cache enabled", map[string]any{"addr": cfg.RedisAddr, "ttl": cfg.CacheTTL.String()})
	}

	return b, nil
}
