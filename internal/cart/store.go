package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists register carts as JSON snapshots in Redis. Every write
// refreshes the TTL so an abandoned register eventually drops its cart.
type Store struct {
	R   *redis.Client
	TTL time.Duration
}

func (s *Store) ttl() time.Duration {
	if s == nil || s.TTL <= 0 {
		return 12 * time.Hour
	}
	return s.TTL
}

func cartKey(registerID string) string {
	return "cart:" + registerID
}

// Load fetches the cart for a register, reporting whether one existed.
func (s *Store) Load(ctx context.Context, registerID string) (Cart, bool, error) {
	if s == nil || s.R == nil {
		return Cart{}, false, errors.New("cart store not configured")
	}
	data, err := s.R.Get(ctx, cartKey(registerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Cart{}, false, nil
		}
		return Cart{}, false, fmt.Errorf("load cart: %w", err)
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, false, fmt.Errorf("decode cart: %w", err)
	}
	return c, true, nil
}

// Save writes the cart snapshot and refreshes its TTL.
func (s *Store) Save(ctx context.Context, c Cart) error {
	if s == nil || s.R == nil {
		return errors.New("cart store not configured")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.R.Set(ctx, cartKey(c.RegisterID), data, s.ttl()).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Delete drops the register's cart.
func (s *Store) Delete(ctx context.Context, registerID string) error {
	if s == nil || s.R == nil {
		return errors.New("cart store not configured")
	}
	return s.R.Del(ctx, cartKey(registerID)).Err()
}
