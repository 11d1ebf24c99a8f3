package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ListCache holds rendered catalog listings. Only the browse pages go
// through it; pricing always reads the live repository.
type ListCache interface {
	Get(ctx context.Context, key string) ([]*domain.Product, error)
	Set(ctx context.Context, key string, products []*domain.Product) error
	Delete(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]*domain.Product, error) {
	data, err := r.client.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []*domain.Product
	if err2 := json.Unmarshal(data, &products); err2 != nil {
		return nil, fmt.Errorf("unmarshal products failed: %w", err2)
	}

	return products, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, products []*domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal products failed: %w", err)
	}

	// Jitter spreads out expiry so both listings never refill at once.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, cacheKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, cacheKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(key string) string {
	return fmt.Sprintf("catalog:%s", key)
}
