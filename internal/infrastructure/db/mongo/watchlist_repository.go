package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/signalist/signalist-api/internal/core/domain"
)

const watchlistCollection = "watchlists"

type WatchlistRepository struct {
	coll *mongo.Collection
}

func NewWatchlistRepository(db *mongo.Database) *WatchlistRepository {
	return &WatchlistRepository{coll: db.Collection(watchlistCollection)}
}

// ListByUser returns the user's entries, newest first.
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WatchlistEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*domain.WatchlistEntry
	for cursor.Next(ctx) {
		var e domain.WatchlistEntry
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode watchlist entry: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist: %w", err)
	}
	return entries, nil
}

// Add inserts the entry. The unique (user_id, symbol) index arbitrates
// concurrent adds of the same pair: the loser's duplicate-key error is
// surfaced as domain.ErrWatchlistDuplicate.
func (r *WatchlistRepository) Add(ctx context.Context, entry *domain.WatchlistEntry) error {
	_, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrWatchlistDuplicate
		}
		return fmt.Errorf("insert watchlist entry: %w", err)
	}
	return nil
}

// Remove deletes (userID, symbol). A missing entry is not an error.
func (r *WatchlistRepository) Remove(ctx context.Context, userID, symbol string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "symbol": symbol})
	if err != nil {
		return fmt.Errorf("delete watchlist entry: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique per-user symbol index.
func (r *WatchlistRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "symbol", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
