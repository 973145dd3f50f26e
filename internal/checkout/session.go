package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	redislib "github.com/pawmart/pawmart-backend/pkg/redis"
	"github.com/pawmart/pawmart-backend/pkg/types"
)

// State identifies where a checkout attempt is in the two-step flow.
type State string

const (
	// StateCollectingShipping means the shipping form has not been
	// submitted yet.
	StateCollectingShipping State = "collecting_shipping"
	// StateAwaitingPayment means shipping is captured and the attempt can
	// be confirmed.
	StateAwaitingPayment State = "awaiting_payment"
)

// Session is the in-flight checkout attempt, one per user. It lives in
// redis with a short TTL so abandoned checkouts expire on their own.
type Session struct {
	State           State                 `json:"state"`
	ShippingAddress types.ShippingAddress `json:"shipping_address"`
	StartedAt       time.Time             `json:"started_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ErrSessionMissing signals that no checkout attempt is in flight.
var ErrSessionMissing = errors.New("checkout session missing")

// SessionStore persists one checkout session per user.
type SessionStore interface {
	Save(ctx context.Context, userID uuid.UUID, session *Session, ttl time.Duration) error
	Load(ctx context.Context, userID uuid.UUID) (*Session, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// RedisSessionStore keeps checkout sessions under a fixed per-user key.
type RedisSessionStore struct {
	client *redislib.Client
}

// NewRedisSessionStore wraps the shared redis client.
func NewRedisSessionStore(client *redislib.Client) (*RedisSessionStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisSessionStore{client: client}, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, userID uuid.UUID, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.client.CheckoutKey(userID.String()), payload, ttl)
}

func (s *RedisSessionStore) Load(ctx context.Context, userID uuid.UUID) (*Session, error) {
	raw, err := s.client.Get(ctx, s.client.CheckoutKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrSessionMissing
		}
		return nil, err
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		// An unreadable session is treated like an expired one.
		return nil, ErrSessionMissing
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, s.client.CheckoutKey(userID.String()))
}
