package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "idem:booking:"

type RedisStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisStore(client *redis.Client, log *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		log:    log.With(zap.String("store", "idempotency")),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		s.log.Error("Failed to read idempotency key", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("get idempotency key %s: %w", key, err)
	}
	return data, true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// SetNX keeps the first stored result when two retries race
	if err := s.client.SetNX(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		s.log.Error("Failed to save idempotency key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("save idempotency key %s: %w", key, err)
	}
	return nil
}
