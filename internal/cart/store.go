package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	redislib "github.com/pawmart/pawmart-backend/pkg/redis"
)

// ErrSnapshotMissing signals that no snapshot exists for the user.
var ErrSnapshotMissing = errors.New("cart snapshot missing")

// SnapshotStore persists one cart snapshot per user.
type SnapshotStore interface {
	Save(ctx context.Context, userID uuid.UUID, payload []byte, ttl time.Duration) error
	Load(ctx context.Context, userID uuid.UUID) ([]byte, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// RedisStore keeps cart snapshots under a fixed per-user redis key, so a
// re-save always overwrites the previous state.
type RedisStore struct {
	client *redislib.Client
}

// NewRedisStore wraps the shared redis client.
func NewRedisStore(client *redislib.Client) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Save(ctx context.Context, userID uuid.UUID, payload []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.client.CartKey(userID.String()), payload, ttl)
}

func (s *RedisStore) Load(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrSnapshotMissing
		}
		return nil, err
	}
	return []byte(raw), nil
}

func (s *RedisStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, s.client.CartKey(userID.String()))
}
