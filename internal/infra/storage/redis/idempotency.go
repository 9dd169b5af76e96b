package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stayhub/internal/app/middleware"
)

// IdempotencyStore persists command results in Redis, sharing replay state
// across instances. Records expire after TTL; zero keeps them forever.
type IdempotencyStore struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{Client: client, TTL: ttl, Prefix: "idem"}
}

func (s *IdempotencyStore) key(cmdKey string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "idem"
	}
	return fmt.Sprintf("%s:%s", prefix, cmdKey)
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	raw, err := s.Client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return middleware.IdempotencyRecord{}, false, nil
	}
	if err != nil {
		return middleware.IdempotencyRecord{}, false, fmt.Errorf("redis: get idempotency record: %w", err)
	}
	var rec middleware.IdempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return middleware.IdempotencyRecord{}, false, fmt.Errorf("redis: decode idempotency record: %w", err)
	}
	return rec, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis: encode idempotency record: %w", err)
	}
	// SetNX keeps the first stored outcome; a racing duplicate must replay
	// the original result, not overwrite it.
	if err := s.Client.SetNX(ctx, s.key(rec.Key), payload, s.TTL).Err(); err != nil {
		return fmt.Errorf("redis: save idempotency record: %w", err)
	}
	return nil
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
