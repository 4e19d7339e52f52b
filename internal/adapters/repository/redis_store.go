package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/alessiogreco/weekblocks/internal/core/domain"
)

var _ domain.TrackerStore = (*RedisTrackerStore)(nil)

// RedisTrackerStore persists the aggregate as one JSON document under a
// single configured key, the server-side equivalent of a client key-value
// store. No TTL: tracker state lives until replaced.
type RedisTrackerStore struct {
	client *redis.Client
	key    string
}

func NewRedisTrackerStore(client *redis.Client, key string) *RedisTrackerStore {
	return &RedisTrackerStore{
		client: client,
		key:    key,
	}
}

func (s *RedisTrackerStore) Load(ctx context.Context) (*domain.TrackerState, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("redis read failed for key %s: %w", s.key, err)
	}

	var state domain.TrackerState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		// Malformed documents are treated as absent, never as a crash.
		log.Printf("[STORE] Corrupted document at key %s, falling back to defaults: %v", s.key, err)
		return nil, domain.ErrStateNotFound
	}

	return &state, nil
}

func (s *RedisTrackerStore) Save(ctx context.Context, state *domain.TrackerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal tracker state: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis write failed for key %s: %w", s.key, err)
	}
	return nil
}
