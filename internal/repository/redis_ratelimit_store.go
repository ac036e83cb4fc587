package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimitStore keeps the timestamp sequence as a JSON blob per key.
// Keys carry a TTL of the rate-limit window so idle identities expire on the
// Redis side instead of accumulating forever.
type RedisRateLimitStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRateLimitStore creates a store on the given client. ttl should be
// the rate-limit window; entries untouched for that long are dropped.
func NewRedisRateLimitStore(client *redis.Client, ttl time.Duration) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client, ttl: ttl}
}

var _ RateLimitStore = (*RedisRateLimitStore)(nil)

const redisKeyPrefix = "form_rate_limit:"

func (s *RedisRateLimitStore) Load(ctx context.Context, key string) ([]int64, error) {
	blob, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var stamps []int64
	if err := json.Unmarshal(blob, &stamps); err != nil {
		// Corrupt blob: treat as empty rather than locking the identity out.
		return nil, nil
	}
	return stamps, nil
}

func (s *RedisRateLimitStore) Save(ctx context.Context, key string, stamps []int64) error {
	if len(stamps) == 0 {
		return s.client.Del(ctx, redisKeyPrefix+key).Err()
	}
	blob, err := json.Marshal(stamps)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+key, blob, s.ttl).Err()
}
