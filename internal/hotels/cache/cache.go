// Package cache keeps search offers and price holds in Redis for their
// validity window.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"utrippin_backend/internal/hotels/transport"
)

const (
	offerKeyPrefix = "hotels:offers:"
	holdKeyPrefix  = "hotels:hold:"

	offerTTL = 15 * time.Minute
)

// Cache wraps the Redis client. A nil client disables caching; every
// operation then reports a miss.
type Cache struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("cache: not found")

// StoreOffers keeps a search result under its search id.
func (c *Cache) StoreOffers(ctx context.Context, searchID string, offers []transport.HotelOffer) error {
	if c.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("encode offers: %w", err)
	}
	return c.rdb.Set(ctx, offerKeyPrefix+searchID, payload, offerTTL).Err()
}

// GetOffers loads a cached search result.
func (c *Cache) GetOffers(ctx context.Context, searchID string) ([]transport.HotelOffer, error) {
	if c.rdb == nil {
		return nil, ErrNotFound
	}
	payload, err := c.rdb.Get(ctx, offerKeyPrefix+searchID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var offers []transport.HotelOffer
	if err := json.Unmarshal(payload, &offers); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}
	return offers, nil
}

// StoreHold keeps a price hold until it expires. Already-expired holds are
// not stored.
func (c *Cache) StoreHold(ctx context.Context, hold transport.PrebookData) error {
	if c.rdb == nil {
		return nil
	}
	ttl := time.Until(hold.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("encode hold: %w", err)
	}
	return c.rdb.Set(ctx, holdKeyPrefix+hold.BookHash, payload, ttl).Err()
}

// GetHold loads a live price hold by its hold token.
func (c *Cache) GetHold(ctx context.Context, bookHash string) (*transport.PrebookData, error) {
	if c.rdb == nil {
		return nil, ErrNotFound
	}
	payload, err := c.rdb.Get(ctx, holdKeyPrefix+bookHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var hold transport.PrebookData
	if err := json.Unmarshal(payload, &hold); err != nil {
		return nil, fmt.Errorf("decode hold: %w", err)
	}
	return &hold, nil
}
