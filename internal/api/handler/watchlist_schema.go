package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type addWatchlistRequest struct {
	Symbol  string `json:"symbol"  validate:"required,max=12"`
	Company string `json:"company" validate:"required,max=120"`
}

// watchlistItemResponse is one entry enriched with the latest quote. Price
// fields are null when the quote collaborator could not serve the symbol.
type watchlistItemResponse struct {
	Symbol        string    `json:"symbol"`
	Company       string    `json:"company"`
	AddedAt       time.Time `json:"added_at"`
	CurrentPrice  *float64  `json:"current_price"`
	ChangePercent *float64  `json:"change_percent"`
}

type watchlistListResponse struct {
	Data []watchlistItemResponse `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}
