package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis under sess:<token> and lets key
// expiry enforce the TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, token string) (Values, error) {
	data, err := s.client.Get(ctx, storeKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var values Values
	if err2 := json.Unmarshal(data, &values); err2 != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err2)
	}

	return values, nil
}

func (s *RedisStore) Save(ctx context.Context, token string, values Values, ttl time.Duration) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}

	if err := s.client.Set(ctx, storeKey(token), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, storeKey(token)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func storeKey(token string) string {
	return fmt.Sprintf("sess:%s", token)
}
