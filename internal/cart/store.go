package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no cart exists for the id
var ErrNotFound = errors.New("cart not found")

// Store defines cart persistence
type Store interface {
	Get(ctx context.Context, id string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id string) error
}

// RedisStore persists carts as JSON values with a sliding TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a cart store with the given inactivity TTL
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func cartKey(id string) string {
	return "cart:" + id
}

// Get loads a cart and refreshes its TTL
func (s *RedisStore) Get(ctx context.Context, id string) (*Cart, error) {
	data, err := s.client.GetEx(ctx, cartKey(id), s.ttl).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &cart, nil
}

// Save writes the cart and resets its TTL
func (s *RedisStore) Save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(cart.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the cart
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, cartKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
