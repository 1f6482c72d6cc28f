package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 24 * time.Hour

// RedisStore is a Redis-backed SessionStore, for deployments where sessions
// must survive process restarts or be shared across instances.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, prefix: "stockscout:session:"}, nil
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) Turns(ctx context.Context, sessionID string) ([]Turn, error) {
	raw, err := s.client.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("session read: %w", err)
	}

	turns := make([]Turn, 0, len(raw))
	for _, r := range raw {
		var t Turn
		if err := json.Unmarshal([]byte(r), &t); err != nil {
			return nil, fmt.Errorf("session decode: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("session encode: %w", err)
		}
		values = append(values, b)
	}

	key := s.key(sessionID)
	if err := s.client.RPush(ctx, key, values...).Err(); err != nil {
		return fmt.Errorf("session append: %w", err)
	}
	return s.client.Expire(ctx, key, sessionTTL).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
