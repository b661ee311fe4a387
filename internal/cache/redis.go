package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the redis backend.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Redis is a Store backed by a redis server, shared between instances.
type Redis struct {
	cli    *redis.Client
	prefix string
}

func NewRedis(opts RedisOptions) *Redis {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "volseason:"
	}
	return &Redis{
		cli:    redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB}),
		prefix: prefix,
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.cli.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.cli.Set(ctx, r.prefix+key, value, ttl).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.cli.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.cli.Close()
}
