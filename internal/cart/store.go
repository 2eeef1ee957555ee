package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// StorageKey is the key prefix the whole cart list is persisted under.
const StorageKey = "cart:%s"

// TTL is how long an untouched cart survives in storage.
var TTL = 30 * 24 * time.Hour

// Store persists a cart as a single serialized list. Every mutation is
// followed by a full rewrite; Load defaults to an empty cart when the key
// is absent or the stored value does not parse, since the cart is
// disposable convenience state rather than a system of record.
type Store interface {
	Load(ctx context.Context, cartID string) ([]Line, error)
	Save(ctx context.Context, cartID string, lines []Line) error
	Delete(ctx context.Context, cartID string) error
}

// redisStore implements Store on a Redis string value per cart.
type redisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed cart store.
func NewRedisStore(client *redis.Client, logger zerolog.Logger) Store {
	return &redisStore{
		client: client,
		logger: logger.With().Str("store", "cart").Logger(),
	}
}

func (s *redisStore) Load(ctx context.Context, cartID string) ([]Line, error) {
	raw, err := s.client.Get(ctx, fmt.Sprintf(StorageKey, cartID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logger.Warn().Err(err).Str("cart_id", cartID).Msg("stored cart is corrupt, starting empty")
		return nil, nil
	}
	return lines, nil
}

func (s *redisStore) Save(ctx context.Context, cartID string, lines []Line) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := s.client.Set(ctx, fmt.Sprintf(StorageKey, cartID), raw, TTL).Err(); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, fmt.Sprintf(StorageKey, cartID)).Err(); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// memoryStore implements Store in process memory. It serializes through
// JSON like the Redis store so tests cover the same round trip.
type memoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewMemoryStore creates an in-memory cart store for tests and local runs.
func NewMemoryStore() Store {
	return &memoryStore{carts: make(map[string][]byte)}
}

func (s *memoryStore) Load(_ context.Context, cartID string) ([]Line, error) {
	s.mu.RLock()
	raw, ok := s.carts[cartID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, nil
	}
	return lines, nil
}

func (s *memoryStore) Save(_ context.Context, cartID string, lines []Line) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	s.mu.Lock()
	s.carts[cartID] = raw
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, cartID string) error {
	s.mu.Lock()
	delete(s.carts, cartID)
	s.mu.Unlock()
	return nil
}
