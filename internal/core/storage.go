package core

import (
	"context"
	"fmt"
	"io"
	"strings"

	"shoplist/internal/config"
	"shoplist/internal/infra/blob/fs"
	"shoplist/internal/infra/blob/s3"
	"shoplist/internal/infra/persistence/memory"
	"shoplist/internal/infra/persistence/postgres"
	"shoplist/internal/infra/persistence/redis"
	"shoplist/internal/infra/persistence/sqlite"
	"shoplist/pkg/domain"
)

// OpenDocumentStore selects a backend from storage configuration. Defaults to
// sqlite when the driver is unset.
//
//	memory   in-process only (tests / ephemeral)
//	sqlite   embedded sqlite file at sqlite_path
//	postgres PostgreSQL server at postgres_dsn
//	redis    Redis server at redis.addr
//	fs       one JSON file per key under fs_root
//	s3       one object per key in s3.bucket
func OpenDocumentStore(ctx context.Context, cfg config.Storage) (domain.DocumentStore, error) {
	driver := domain.Driver(strings.ToLower(strings.TrimSpace(cfg.Driver)))
	if driver == "" {
		driver = domain.DriverSQLite
	}
	var (
		store domain.DocumentStore
		err   error
	)
	switch driver {
	case domain.DriverMemory:
		return memory.New(), nil
	case domain.DriverSQLite:
		store, err = unwrap(sqlite.NewStore(cfg.SQLitePath))
	case domain.DriverPostgres:
		store, err = unwrap(postgres.NewStore(ctx, cfg.PostgresDSN))
	case domain.DriverRedis:
		store, err = unwrap(redis.New(ctx, redis.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		}))
	case domain.DriverFS:
		store, err = unwrap(fs.New(cfg.FSRoot))
	case domain.DriverS3:
		store, err = unwrap(s3.New(ctx, s3.Config{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		}))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	return store, nil
}

// unwrap keeps a failed constructor's typed nil pointer out of the interface.
func unwrap[S domain.DocumentStore](s S, err error) (domain.DocumentStore, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CloseDocumentStore releases backend resources for stores that hold any.
func CloseDocumentStore(store domain.DocumentStore) error {
	if c, ok := store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
