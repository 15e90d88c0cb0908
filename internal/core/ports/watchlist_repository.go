package ports

import (
	"context"

	"github.com/signalist/signalist-api/internal/core/domain"
)

// WatchlistRepository is the persistence port for watchlist entries.
//
// Add must surface a (user_id, symbol) unique-index violation as
// domain.ErrWatchlistDuplicate. Remove is idempotent: deleting an absent
// entry is not an error.
type WatchlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.WatchlistEntry, error)
	Add(ctx context.Context, entry *domain.WatchlistEntry) error
	Remove(ctx context.Context, userID, symbol string) error
}
