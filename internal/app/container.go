package app

import (
	"context"
	"log"
	"time"

	"hireflow/internal/config"
	"hireflow/internal/database"
	"hireflow/internal/database/migration"
	dbpostgres "hireflow/internal/database/postgres"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/infrastructure/storage"
)

type Container struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Objects storage.ObjectStore
	Logger  *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: "migrations"}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)

	var objects storage.ObjectStore
	if cfg.Storage.Bucket != "" {
		store, err := storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			_ = redis.Close()
			_ = db.Close()
			return nil, err
		}
		objects = store
	} else {
		logger.Printf("object storage disabled | reason=no_bucket_configured")
	}

	return &Container{
		Config:  cfg,
		DB:      db,
		Cache:   redis,
		Objects: objects,
		Logger:  logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
