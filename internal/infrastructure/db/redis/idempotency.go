package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore records transfer idempotency keys in Redis so a client
// retry of an already-committed transfer does not move funds twice. The
// balance service passes keys already scoped to the acting user, so the
// stored form is transfer:idem:<userID>:<clientKey>.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Seen reports whether a transfer with this key has already been committed.
func (s *IdempotencyStore) Seen(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency check: %w", err)
	}
	return n > 0, nil
}

// Mark records a committed transfer (expires after idempotencyTTL).
func (s *IdempotencyStore) Mark(ctx context.Context, key string) error {
	return s.client.Set(ctx, s.key(key), "1", idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "transfer:idem:" + key
}
