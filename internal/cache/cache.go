package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/finflow/internal"
)

// Cache stores serialized values by key. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

const (
	DefaultSize = 1000
	DefaultTTL  = 5 * time.Minute
)

// New builds the cache selected by cfg.Driver.
func New(cfg internal.CacheConfig) (Cache, error) {
	size := cfg.Size
	if size <= 0 {
		size = DefaultSize
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch cfg.Driver {
	case "", "memory":
		return NewMemory(size, ttl), nil
	case "none":
		return Noop{}, nil
	case "redis":
		return NewRedis(cfg.RedisAddr, cfg.RedisDB, ttl), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Driver)
	}
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(ctx context.Context, key string, value []byte) error  { return nil }
func (Noop) Delete(ctx context.Context, keys ...string) error         { return nil }
func (Noop) Ping(ctx context.Context) error                           { return nil }
func (Noop) Close() error                                             { return nil }
