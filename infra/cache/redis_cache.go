package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"log/slog"

	"github.com/omarsaleh/bankd/pkg/dto"
	"github.com/redis/go-redis/v9"
)

// RedisAccountCache implements cache.AccountCache using Redis.
type RedisAccountCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisAccountCache creates a RedisAccountCache from redis.Options.
func NewRedisAccountCache(
	opt *redis.Options,
	prefix string,
	logger *slog.Logger,
) *RedisAccountCache {
	client := redis.NewClient(opt)
	return &RedisAccountCache{client: client, prefix: prefix, logger: logger}
}

func (r *RedisAccountCache) key(email string) string {
	return r.prefix + email
}

func (r *RedisAccountCache) Get(ctx context.Context, email string) (*dto.AccountRead, error) {
	val, err := r.client.Get(ctx, r.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "email", email)
		return nil, nil // cache miss
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "email", email, "error", err)
		return nil, err
	}
	var acct dto.AccountRead
	if err := json.Unmarshal([]byte(val), &acct); err != nil {
		r.logger.Error("Redis cache unmarshal error", "email", email, "error", err)
		return nil, err
	}
	r.logger.Debug("Redis cache hit", "email", email)
	return &acct, nil
}

func (r *RedisAccountCache) Set(
	ctx context.Context,
	email string,
	acct *dto.AccountRead,
	ttl time.Duration,
) error {
	data, err := json.Marshal(acct)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "email", email, "error", err)
		return err
	}
	if err := r.client.Set(ctx, r.key(email), data, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "email", email, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "email", email, "ttl", ttl)
	return nil
}

func (r *RedisAccountCache) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, r.key(email)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "email", email, "error", err)
		return err
	}
	r.logger.Debug("Redis cache delete", "email", email)
	return nil
}
