// Package quotes implements the external market-data collaborator client.
// Lookups are best-effort by contract: callers treat any error as "no price
// available" and degrade rather than fail.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/signalist/signalist-api/internal/core/ports"
)

const defaultHTTPTimeout = 5 * time.Second

// FinnhubClient fetches quotes from the Finnhub-compatible quote endpoint:
// GET {base}/quote?symbol=S&token=T → {"c": <price>, "dp": <change %>}.
type FinnhubClient struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewFinnhubClient builds a client for the given endpoint. An http.Client
// may be injected for tests; nil uses a default with a short timeout.
func NewFinnhubClient(baseURL, token string, httpc *http.Client) *FinnhubClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &FinnhubClient{baseURL: baseURL, token: token, httpc: httpc}
}

type quoteResponse struct {
	Current       *float64 `json:"c"`
	ChangePercent *float64 `json:"dp"`
}

// Quote looks up the latest quote for symbol. A missing API token, non-200
// response, or absent fields all yield an error; the caller degrades.
func (f *FinnhubClient) Quote(ctx context.Context, symbol string) (*ports.Quote, error) {
	if f.token == "" {
		return nil, fmt.Errorf("quote lookup disabled: no api token")
	}

	endpoint := fmt.Sprintf("%s/quote?symbol=%s&token=%s",
		f.baseURL, url.QueryEscape(symbol), url.QueryEscape(f.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}

	resp, err := f.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote request for %s: status %d", symbol, resp.StatusCode)
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}
	if body.Current == nil || body.ChangePercent == nil {
		return nil, fmt.Errorf("quote response for %s missing fields", symbol)
	}

	return &ports.Quote{
		CurrentPrice:  *body.Current,
		ChangePercent: *body.ChangePercent,
	}, nil
}
