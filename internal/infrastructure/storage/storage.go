// Package storage provides the keyed storage backends the history and draft
// stores persist into.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/config"
	"github.com/anviet/tuition-api/internal/domain/repository"
	"github.com/anviet/tuition-api/internal/infrastructure/database"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
)

// CloseFunc releases the backend connection.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// Open connects the backend selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.KeyValueStore, CloseFunc, error) {
	driver := cfg.Storage.Driver
	if driver == "" {
		driver = DriverMemory
	}

	switch driver {
	case DriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return NewMemoryStore(), noopClose, nil

	case DriverPostgres:
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db, log); err != nil {
			return nil, nil, err
		}
		closeFn := func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return NewPostgresStore(db), closeFn, nil

	case DriverRedis:
		store, err := NewRedisStore(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
		return store, store.Close, nil

	case DriverMongo:
		store, err := NewMongoStore(ctx, &cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to mongodb", zap.String("db", cfg.Mongo.DBName))
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q (use memory, postgres, redis or mongo)", driver)
	}
}
