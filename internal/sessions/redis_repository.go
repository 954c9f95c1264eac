package sessions

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository implements Repository using Redis as the backing store.
// Sessions are stored as JSON under key: "session:<id>" with the configured
// TTL, refreshed on every save.
type RedisRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-based session repository. Prefix may be empty.
func NewRedisRepository(client *redis.Client, prefix string, ttl time.Duration) *RedisRepository {
	if prefix == "" {
		prefix = "session:"
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisRepository{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisRepository) key(id string) string {
	return r.prefix + id
}

func (r *RedisRepository) Get(ctx context.Context, id string) (*State, error) {
	b, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisRepository) Save(ctx context.Context, s *State) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(s.ID), b, r.ttl).Err()
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}
