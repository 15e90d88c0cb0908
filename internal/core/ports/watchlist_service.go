package ports

import (
	"context"
	"time"
)

// WatchlistItem is a watchlist entry enriched with the latest quote.
// CurrentPrice and ChangePercent are nil when the quote lookup for that
// symbol failed or yielded no data.
type WatchlistItem struct {
	Symbol        string
	Company       string
	AddedAt       time.Time
	CurrentPrice  *float64
	ChangePercent *float64
}

// WatchlistService defines the identity-scoped watchlist use cases. Every
// operation acts on the resolved caller's own entries only.
type WatchlistService interface {
	List(ctx context.Context, userID string) ([]WatchlistItem, error)
	Add(ctx context.Context, userID, symbol, company string) error
	Remove(ctx context.Context, userID, symbol string) error
}
