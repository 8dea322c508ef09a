package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore maps an Idempotency-Key to the ID of the payment it
// created. The key is remembered only after the payment commits, so a failed
// attempt leaves the key free for a retry and a replay can return the
// original payment.
type IdempotencyStore interface {
	// Lookup returns the payment ID remembered for a key, if any
	Lookup(ctx context.Context, key string) (string, bool, error)

	// Remember records the payment created for a key. The TTL bounds how long
	// replays are recognized.
	Remember(ctx context.Context, key, paymentID string, ttl time.Duration) error
}

// RedisIdempotencyStore implements IdempotencyStore using Redis, suitable
// for multi-instance deployments.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisIdempotencyStore creates a store with an existing Redis client
func NewRedisIdempotencyStore(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = "payment:idempotency:"
	}
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Lookup returns the payment ID remembered for a key, if any
func (s *RedisIdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	paymentID, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	return paymentID, true, nil
}

// Remember records the payment created for a key. SETNX keeps the first
// writer's payment ID if two instances race on the same key.
func (s *RedisIdempotencyStore) Remember(ctx context.Context, key, paymentID string, ttl time.Duration) error {
	if err := s.client.SetNX(ctx, s.keyPrefix+key, paymentID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to remember idempotency key: %w", err)
	}
	return nil
}

var _ IdempotencyStore = (*RedisIdempotencyStore)(nil)

// InMemoryIdempotencyStore is a process-local store for tests and
// single-instance runs.
type InMemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]memoEntry
}

type memoEntry struct {
	paymentID string
	expiry    time.Time
}

// NewInMemoryIdempotencyStore creates a new in-memory idempotency store
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{entries: make(map[string]memoEntry)}
}

// Lookup returns the payment ID remembered for a key, if any
func (s *InMemoryIdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if time.Now().After(entry.expiry) {
		delete(s.entries, key)
		return "", false, nil
	}
	return entry.paymentID, true, nil
}

// Remember records the payment created for a key. The first payment ID wins
// when the same key is remembered twice.
func (s *InMemoryIdempotencyStore) Remember(_ context.Context, key, paymentID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok && time.Now().Before(entry.expiry) {
		return nil
	}
	s.entries[key] = memoEntry{paymentID: paymentID, expiry: time.Now().Add(ttl)}
	return nil
}

var _ IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
