package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/namax/internal/store"
)

// Store is a store.KeyValue backed by Redis strings.
// Values never expire: collections are capped by their owner instead.
type Store struct {
	client redis.Cmdable
}

// NewStore creates a new Redis key-value store
func NewStore(client redis.Cmdable) *Store {
	return &Store{
		client: client,
	}
}

// Get retrieves a value. A missing key is reported as found=false, not an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, KVKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w: %w", key, store.ErrUnavailable, err)
	}
	return val, true, nil
}

// Set stores a value without TTL
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, KVKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w: %w", key, store.ErrUnavailable, err)
	}
	return nil
}

// Delete removes a key; removing an absent key is not an error
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, KVKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w: %w", key, store.ErrUnavailable, err)
	}
	return nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return nil
}

// CountClients returns how many client scopes hold namax keys, scanning in
// batches.
func (s *Store) CountClients(ctx context.Context) (int, error) {
	seen := make(map[string]struct{})
	iter := s.client.Scan(ctx, 0, KeyPrefixKV+"*", 100).Iterator()
	for iter.Next(ctx) {
		key, err := ExtractKey(iter.Val())
		if err != nil {
			continue
		}
		if c, ok := store.ClientOf(key); ok {
			seen[c] = struct{}{}
		}
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan keys: %w: %w", store.ErrUnavailable, err)
	}
	return len(seen), nil
}
