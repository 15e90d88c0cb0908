package ports

import "context"

// Quote is a point-in-time snapshot for one symbol.
type Quote struct {
	CurrentPrice  float64
	ChangePercent float64
}

// QuoteProvider looks up the latest quote for a symbol from the external
// market-data collaborator. Lookups are best-effort: callers degrade a failed
// quote to missing price data rather than failing their own operation.
type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (*Quote, error)
}
