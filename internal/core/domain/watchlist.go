package domain

import (
	"errors"
	"time"
)

var ErrWatchlistDuplicate = errors.New("symbol already exists in watchlist")

// WatchlistEntry records a single tracked symbol for one user. Uniqueness on
// (UserID, Symbol) is enforced by the storage layer's unique index, so
// concurrent adds of the same pair race there: one wins, the other observes
// ErrWatchlistDuplicate.
type WatchlistEntry struct {
	UserID  string    `json:"user_id" bson:"user_id"`
	Symbol  string    `json:"symbol" bson:"symbol"`
	Company string    `json:"company" bson:"company"`
	AddedAt time.Time `json:"added_at" bson:"added_at"`
}
