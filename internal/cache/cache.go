// Package cache stores fetched bar series for a short time so repeated
// page loads do not hit the market-data provider again.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store is a byte-oriented TTL cache.
type Store interface {
	// Get returns the value for key; ok is false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Options selects and configures a Store.
type Options struct {
	Backend    string
	MaxEntries int
	Redis      RedisOptions
}

// New builds the configured Store. BackendNone returns a nil Store, which
// callers treat as "caching disabled".
func New(opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case BackendMemory, "":
		return NewMemory(opts.MaxEntries), nil
	case BackendRedis:
		return NewRedis(opts.Redis), nil
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
