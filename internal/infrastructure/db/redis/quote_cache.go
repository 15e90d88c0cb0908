package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/signalist/signalist-api/internal/core/ports"
)

// QuoteCache keeps recent per-symbol quotes in Redis so watchlist rendering
// does not hammer the rate-limited market-data collaborator.
// Key format: quote:<symbol>
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuoteCache creates a QuoteCache wrapping the given Redis client.
func NewQuoteCache(client *redis.Client, ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &QuoteCache{client: client, ttl: ttl}
}

// Get returns the cached quote for symbol, or (nil, nil) on a miss.
func (c *QuoteCache) Get(ctx context.Context, symbol string) (*ports.Quote, error) {
	raw, err := c.client.Get(ctx, c.key(symbol)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("quote cache get: %w", err)
	}

	var quote ports.Quote
	if err := json.Unmarshal(raw, &quote); err != nil {
		return nil, fmt.Errorf("quote cache decode: %w", err)
	}
	return &quote, nil
}

// Set stores the quote for symbol until the TTL lapses.
func (c *QuoteCache) Set(ctx context.Context, symbol string, quote *ports.Quote) error {
	raw, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("quote cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(symbol), raw, c.ttl).Err()
}

func (c *QuoteCache) key(symbol string) string {
	return "quote:" + symbol
}
