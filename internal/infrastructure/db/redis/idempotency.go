package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyTTL bounds how long a placed order can be replayed by key.
const IdempotencyTTL = 24 * time.Hour

const idempotencyPrefix = "idem:order:"

// pendingMarker is stored under a reserved key until its order exists.
const pendingMarker = "pending"

// IdempotencyStore maps client-supplied keys to the order they produced.
// Key format: idem:order:<key>
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewIdempotencyStore wraps client with the default TTL.
func NewIdempotencyStore(client redis.Cmdable) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: IdempotencyTTL}
}

// Reserve claims key with SETNX. A held key reports the order id stored under
// it, or "" while the holder is still placing its order.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (string, bool, error) {
	k := idempotencyPrefix + key
	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}

	id, err := s.client.Get(ctx, k).Result()
	switch {
	case errors.Is(err, redis.Nil), id == pendingMarker:
		// Expired between the two calls, or still in flight.
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	return id, false, nil
}

// Complete replaces the reservation with the order id, restarting the TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, key, orderID string) error {
	if err := s.client.Set(ctx, idempotencyPrefix+key, orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release deletes a reservation so the key can be used again.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyPrefix+key).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}
