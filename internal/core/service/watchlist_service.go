package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/ports"
)

// WatchlistService implements the identity-scoped watchlist use cases.
type WatchlistService struct {
	repo   ports.WatchlistRepository
	quotes ports.QuoteProvider
	logger zerolog.Logger
}

func NewWatchlistService(repo ports.WatchlistRepository, quotes ports.QuoteProvider, logger zerolog.Logger) *WatchlistService {
	return &WatchlistService{repo: repo, quotes: quotes, logger: logger}
}

// List returns the caller's entries, newest first, enriched with the latest
// quote per symbol. A failed quote lookup degrades that entry's price fields
// to nil instead of failing the whole list.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]ports.WatchlistItem, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]ports.WatchlistItem, 0, len(entries))
	for _, e := range entries {
		item := ports.WatchlistItem{
			Symbol:  e.Symbol,
			Company: e.Company,
			AddedAt: e.AddedAt,
		}
		quote, qerr := s.quotes.Quote(ctx, e.Symbol)
		if qerr != nil {
			s.logger.Warn().Err(qerr).Str("symbol", e.Symbol).Msg("quote lookup failed, degrading entry")
		} else if quote != nil {
			price := quote.CurrentPrice
			change := quote.ChangePercent
			item.CurrentPrice = &price
			item.ChangePercent = &change
		}
		items = append(items, item)
	}
	return items, nil
}

// Add inserts (userID, symbol). A repeated add leaves state unchanged and
// surfaces domain.ErrWatchlistDuplicate; the unique index decides the race
// between concurrent adds, so no read-then-write check is done here.
func (s *WatchlistService) Add(ctx context.Context, userID, symbol, company string) error {
	entry := &domain.WatchlistEntry{
		UserID:  userID,
		Symbol:  NormalizeSymbol(symbol),
		Company: strings.TrimSpace(company),
		AddedAt: time.Now().UTC(),
	}

	if err := s.repo.Add(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrWatchlistDuplicate) {
			return domain.ErrWatchlistDuplicate
		}
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("symbol", entry.Symbol).Msg("watchlist entry added")
	return nil
}

// Remove deletes (userID, symbol). Removing an absent entry succeeds: the
// end state is identical either way.
func (s *WatchlistService) Remove(ctx context.Context, userID, symbol string) error {
	return s.repo.Remove(ctx, userID, NormalizeSymbol(symbol))
}

// NormalizeSymbol canonicalizes a ticker symbol for storage and lookup.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
