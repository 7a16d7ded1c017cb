package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/estrie-eats/checkout-backend/pkg/money"
	"github.com/estrie-eats/checkout-backend/pkg/redis"
)

// CheckoutSession is the snapshot written just before the shopper is
// redirected to the external payment flow, and read back for reconciliation
// when the browser returns.
type CheckoutSession struct {
	CartLines                []CartLine       `json:"cartLines"`
	CustomerInfo             CustomerFormData `json:"customerInfo"`
	Totals                   Totals           `json:"totals"`
	EstimatedPrepTimeMinutes int              `json:"estimatedPrepTimeMinutes"`
	CreatedAtEpochMillis     int64            `json:"createdAtEpochMillis"`
}

// PendingPoints records the loyalty points a signed-in customer will earn once
// the payment completes. Consumed exactly once on return.
type PendingPoints struct {
	UserID            string  `json:"userId"`
	OrderID           string  `json:"orderId,omitempty"`
	PointsEarned      int64   `json:"pointsEarned"`
	CartTotal         float64 `json:"cartTotal"`
	EstimatedPrepTime int     `json:"estimatedPrepTime"`
}

// NewPendingPoints derives the pending-points snapshot from a priced session.
// Points are the whole dollars of the final total, floored.
func NewPendingPoints(userID, orderID string, totals Totals, prepMinutes int) PendingPoints {
	return PendingPoints{
		UserID:            userID,
		OrderID:           orderID,
		PointsEarned:      money.WholeDollars(totals.FinalTotal),
		CartTotal:         totals.FinalTotal,
		EstimatedPrepTime: prepMinutes,
	}
}

// SessionStore persists and recovers checkout snapshots across the external
// payment redirect.
type SessionStore interface {
	SaveSession(ctx context.Context, shopperID string, session CheckoutSession) error
	LoadSession(ctx context.Context, shopperID string) (*CheckoutSession, error)
	ClearSession(ctx context.Context, shopperID string) error
	SavePendingPoints(ctx context.Context, customerID string, points PendingPoints) error
	ConsumePendingPoints(ctx context.Context, customerID string) (*PendingPoints, error)
}

type sessionKV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetDel(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CheckoutSessionKey(shopperID string) string
	PendingPointsKey(customerID string) string
}

// RedisSessionStore keeps snapshots in Redis under the shared namespace with
// a bounded TTL so abandoned checkouts expire on their own.
type RedisSessionStore struct {
	kv  sessionKV
	ttl time.Duration
}

func NewRedisSessionStore(kv sessionKV, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{kv: kv, ttl: ttl}
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, shopperID string, session CheckoutSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.kv.CheckoutSessionKey(shopperID), payload, s.ttl)
}

// LoadSession returns the pending snapshot, or nil when none exists. The
// snapshot stays in place so repeat reads during reconciliation succeed;
// callers clear it explicitly once the order is settled.
func (s *RedisSessionStore) LoadSession(ctx context.Context, shopperID string) (*CheckoutSession, error) {
	raw, err := s.kv.Get(ctx, s.kv.CheckoutSessionKey(shopperID))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, nil
		}
		return nil, err
	}
	var session CheckoutSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) ClearSession(ctx context.Context, shopperID string) error {
	return s.kv.Del(ctx, s.kv.CheckoutSessionKey(shopperID))
}

func (s *RedisSessionStore) SavePendingPoints(ctx context.Context, customerID string, points PendingPoints) error {
	payload, err := json.Marshal(points)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.kv.PendingPointsKey(customerID), payload, s.ttl)
}

// ConsumePendingPoints reads and deletes the snapshot atomically so points
// are credited at most once.
func (s *RedisSessionStore) ConsumePendingPoints(ctx context.Context, customerID string) (*PendingPoints, error) {
	raw, err := s.kv.GetDel(ctx, s.kv.PendingPointsKey(customerID))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, nil
		}
		return nil, err
	}
	var points PendingPoints
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		return nil, err
	}
	return &points, nil
}
