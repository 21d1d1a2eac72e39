package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const processedKeyPrefix = "processed"

// ProcessedStore remembers which events a consumer has already acted on, so a
// redelivered message does not repeat its side effect.
// Key format: "processed:{consumer}:{eventID}"
type ProcessedStore struct {
	client *RedisClient
	ttl    time.Duration
}

// NewProcessedStore returns a store whose markers expire after ttl. The ttl
// bounds how late a redelivery can arrive and still be recognized.
func NewProcessedStore(r *RedisClient, ttl time.Duration) *ProcessedStore {
	return &ProcessedStore{client: r, ttl: ttl}
}

// Claim atomically marks eventID as processed by consumer. It returns true when
// the caller is the first to claim it and should perform the side effect, and
// false for a duplicate.
func (s *ProcessedStore) Claim(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error) {
	ok, err := s.client.Client().SetNX(ctx, s.key(consumer, eventID), time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("processed store claim: %w", err)
	}
	return ok, nil
}

// Release forgets a claim so the event can be processed again.
func (s *ProcessedStore) Release(ctx context.Context, consumer string, eventID uuid.UUID) error {
	if err := s.client.Client().Del(ctx, s.key(consumer, eventID)).Err(); err != nil {
		return fmt.Errorf("processed store release: %w", err)
	}
	return nil
}

func (s *ProcessedStore) key(consumer string, eventID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", processedKeyPrefix, consumer, eventID)
}
