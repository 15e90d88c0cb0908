package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/ports"
)

type stubWatchlistRepo struct {
	entries []*domain.WatchlistEntry
	addErr  error
	removed []string
}

func (s *stubWatchlistRepo) ListByUser(_ context.Context, userID string) ([]*domain.WatchlistEntry, error) {
	var out []*domain.WatchlistEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubWatchlistRepo) Add(_ context.Context, entry *domain.WatchlistEntry) error {
	if s.addErr != nil {
		return s.addErr
	}
	for _, e := range s.entries {
		if e.UserID == entry.UserID && e.Symbol == entry.Symbol {
			return domain.ErrWatchlistDuplicate
		}
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubWatchlistRepo) Remove(_ context.Context, userID, symbol string) error {
	s.removed = append(s.removed, symbol)
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !(e.UserID == userID && e.Symbol == symbol) {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}

type stubQuoteProvider struct {
	quotes map[string]*ports.Quote
	errs   map[string]error
}

func (s *stubQuoteProvider) Quote(_ context.Context, symbol string) (*ports.Quote, error) {
	if err, ok := s.errs[symbol]; ok {
		return nil, err
	}
	return s.quotes[symbol], nil
}

func newWatchlistService(repo *stubWatchlistRepo, quotes *stubQuoteProvider) *WatchlistService {
	if quotes == nil {
		quotes = &stubQuoteProvider{}
	}
	return NewWatchlistService(repo, quotes, zerolog.Nop())
}

func TestWatchlistService_ListEnrichesWithQuotes(t *testing.T) {
	repo := &stubWatchlistRepo{entries: []*domain.WatchlistEntry{
		{UserID: "u1", Symbol: "AAPL", Company: "Apple Inc", AddedAt: time.Now()},
		{UserID: "u1", Symbol: "TSLA", Company: "Tesla Inc", AddedAt: time.Now()},
		{UserID: "u2", Symbol: "MSFT", Company: "Microsoft", AddedAt: time.Now()},
	}}
	quotes := &stubQuoteProvider{
		quotes: map[string]*ports.Quote{
			"AAPL": {CurrentPrice: 231.5, ChangePercent: 1.2},
		},
		errs: map[string]error{
			"TSLA": errors.New("upstream timeout"),
		},
	}
	svc := newWatchlistService(repo, quotes)

	items, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items scoped to u1, got %d", len(items))
	}
	if items[0].CurrentPrice == nil || *items[0].CurrentPrice != 231.5 {
		t.Errorf("AAPL price not enriched: %+v", items[0])
	}
	// A failed lookup degrades that entry, never the whole list.
	if items[1].CurrentPrice != nil || items[1].ChangePercent != nil {
		t.Errorf("TSLA should degrade to nil prices: %+v", items[1])
	}
}

func TestWatchlistService_AddNormalizesSymbol(t *testing.T) {
	repo := &stubWatchlistRepo{}
	svc := newWatchlistService(repo, nil)

	if err := svc.Add(context.Background(), "u1", "  aapl ", " Apple Inc "); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	got := repo.entries[0]
	if got.Symbol != "AAPL" {
		t.Errorf("symbol not normalized: %q", got.Symbol)
	}
	if got.Company != "Apple Inc" {
		t.Errorf("company not trimmed: %q", got.Company)
	}
}

func TestWatchlistService_AddDuplicate(t *testing.T) {
	repo := &stubWatchlistRepo{}
	svc := newWatchlistService(repo, nil)

	if err := svc.Add(context.Background(), "u1", "AAPL", "Apple Inc"); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	err := svc.Add(context.Background(), "u1", "aapl", "Apple Inc")
	if !errors.Is(err, domain.ErrWatchlistDuplicate) {
		t.Fatalf("expected ErrWatchlistDuplicate, got %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("duplicate add must not grow the list: %d entries", len(repo.entries))
	}
}

func TestWatchlistService_RemoveIsIdempotent(t *testing.T) {
	repo := &stubWatchlistRepo{entries: []*domain.WatchlistEntry{
		{UserID: "u1", Symbol: "AAPL"},
	}}
	svc := newWatchlistService(repo, nil)

	if err := svc.Remove(context.Background(), "u1", "aapl"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatalf("entry not removed")
	}
	// Removing what is already gone still succeeds.
	if err := svc.Remove(context.Background(), "u1", "AAPL"); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	if got := NormalizeSymbol(" nvda\t"); got != "NVDA" {
		t.Fatalf("NormalizeSymbol = %q", got)
	}
}
