package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cigarrank/internal/stores"

	"github.com/redis/go-redis/v9"
)

// PriceCache keeps scraped retailer prices in Redis for a short TTL so
// repeated views of the same cigar don't hammer the retail sites. All
// methods are nil-safe no-ops when Redis is unavailable.
type PriceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPriceCache connects to Redis and verifies the connection.
func NewPriceCache(addr, password string, ttl time.Duration) (*PriceCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &PriceCache{client: rdb, ttl: ttl}, nil
}

func priceKey(cigarID int64) string {
	return fmt.Sprintf("prices:cigar:%d", cigarID)
}

// GetPrices returns the cached price list and whether it was present.
func (c *PriceCache) GetPrices(ctx context.Context, cigarID int64) ([]stores.StorePrice, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, priceKey(cigarID)).Bytes()
	if err != nil {
		return nil, false
	}

	var prices []stores.StorePrice
	if err := json.Unmarshal(data, &prices); err != nil {
		return nil, false
	}
	return prices, true
}

// SetPrices stores the price list with the configured TTL. Best-effort.
func (c *PriceCache) SetPrices(ctx context.Context, cigarID int64, prices []stores.StorePrice) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(prices)
	if err != nil {
		return
	}
	c.client.Set(ctx, priceKey(cigarID), data, c.ttl)
}

// Close releases the underlying connection.
func (c *PriceCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
