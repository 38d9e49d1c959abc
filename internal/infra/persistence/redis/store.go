// Package redis persists shopping list documents as Redis strings.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"shoplist/pkg/domain"
)

var _ domain.DocumentStore = (*Store)(nil)

// client is the subset of go-redis commands the store issues.
type client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

// Config holds connection parameters.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string // prepended to every document key, default "shoplist:"
}

// Store maps each document key to one Redis string without expiry.
type Store struct {
	rdb    client
	prefix string
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return newWithClient(rdb, cfg.KeyPrefix), nil
}

func newWithClient(rdb client, prefix string) *Store {
	if prefix == "" {
		prefix = "shoplist:"
	}
	return &Store{rdb: rdb, prefix: prefix}
}

// Driver returns the backend identifier.
func (s *Store) Driver() domain.Driver { return domain.DriverRedis }

// Load returns the document stored at key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("redis document %s: %w", key, domain.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return b, nil
}

// Save replaces the document at key.
func (s *Store) Save(ctx context.Context, key string, doc []byte) error {
	if err := s.rdb.Set(ctx, s.prefix+key, doc, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error { return s.rdb.Close() }
