package quotes

import (
	"context"

	"github.com/signalist/signalist-api/internal/api/metrics"
	"github.com/signalist/signalist-api/internal/core/ports"
	"github.com/signalist/signalist-api/internal/infrastructure/db/redis"
)

// CachedProvider layers the Redis quote cache in front of an upstream
// provider. Cache failures are ignored: the cache is an optimization, the
// upstream result is the answer.
type CachedProvider struct {
	upstream ports.QuoteProvider
	cache    *redis.QuoteCache
}

func NewCachedProvider(upstream ports.QuoteProvider, cache *redis.QuoteCache) *CachedProvider {
	return &CachedProvider{upstream: upstream, cache: cache}
}

func (p *CachedProvider) Quote(ctx context.Context, symbol string) (*ports.Quote, error) {
	if cached, err := p.cache.Get(ctx, symbol); err == nil && cached != nil {
		metrics.QuoteLookupsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}

	quote, err := p.upstream.Quote(ctx, symbol)
	if err != nil {
		metrics.QuoteLookupsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.QuoteLookupsTotal.WithLabelValues("ok").Inc()
	_ = p.cache.Set(ctx, symbol, quote)
	return quote, nil
}
