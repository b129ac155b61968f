package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/skbsalatiga/signage-backend/internal/config"
)

// ErrCacheMiss means the key does not exist or has expired
var ErrCacheMiss = errors.New("cache miss")

// KVStore is the key/value cache used for display snapshots
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr atomically adds one to the integer at key, starting from zero
	Incr(ctx context.Context, key string) (int64, error)
}

// RedisKVStore implements KVStore on go-redis
type RedisKVStore struct {
	client *redis.Client
}

// NewRedisKVStore wraps an existing client
func NewRedisKVStore(client *redis.Client) *RedisKVStore {
	return &RedisKVStore{client: client}
}

// Get implements KVStore
func (r *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

// Set implements KVStore
func (r *RedisKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Delete implements KVStore
func (r *RedisKVStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Incr implements KVStore
func (r *RedisKVStore) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

// Close releases the client
func (r *RedisKVStore) Close() error {
	return r.client.Close()
}

// NewKVStore connects to Redis when an address is configured and
// otherwise returns an in-process store
func NewKVStore(ctx context.Context, cfg config.RedisConfig) (KVStore, error) {
	if cfg.Addr == "" {
		return NewMemoryKVStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisKVStore(client), nil
}
