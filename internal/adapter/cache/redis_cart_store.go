package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/misja/webshop-api/internal/usecase"
)

// RedisCartStore keeps one JSON cart per customer session. Carts are
// transient: they expire with the session TTL and are dropped outright at
// checkout. Each customer has exactly one cart, so the read-modify-write
// here never races with another writer for the same key.
type RedisCartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStore(rdb *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{rdb: rdb, ttl: ttl}
}

func cartKey(customerID string) string { return "cart:" + customerID }

func (s *RedisCartStore) Get(ctx context.Context, customerID string) ([]usecase.CartLineRecord, error) {
	raw, err := s.rdb.Get(ctx, cartKey(customerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []usecase.CartLineRecord
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *RedisCartStore) Append(ctx context.Context, customerID string, line usecase.CartLineRecord) error {
	lines, err := s.Get(ctx, customerID)
	if err != nil {
		return err
	}
	return s.put(ctx, customerID, append(lines, line))
}

func (s *RedisCartStore) RemoveFirst(ctx context.Context, customerID string, productID int64) (bool, error) {
	lines, err := s.Get(ctx, customerID)
	if err != nil {
		return false, err
	}
	for i, l := range lines {
		if l.ProductID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			return true, s.put(ctx, customerID, lines)
		}
	}
	return false, nil
}

func (s *RedisCartStore) Clear(ctx context.Context, customerID string) error {
	return s.rdb.Del(ctx, cartKey(customerID)).Err()
}

func (s *RedisCartStore) put(ctx context.Context, customerID string, lines []usecase.CartLineRecord) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(customerID), raw, s.ttl).Err()
}

var _ usecase.CartStore = (*RedisCartStore)(nil)
