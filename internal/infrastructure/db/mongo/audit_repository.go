package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/ports"
)

const auditCollection = "audit_logs"

// AuditRepository persists the append-only audit trail. There is no update
// or delete path on this collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	AdminID         string             `bson:"admin_id"`
	AdminEmail      string             `bson:"admin_email"`
	Action          string             `bson:"action"`
	TargetUserID    string             `bson:"target_user_id,omitempty"`
	TargetUserEmail string             `bson:"target_user_email,omitempty"`
	Metadata        map[string]any     `bson:"metadata"`
	IPAddress       string             `bson:"ip_address,omitempty"`
	UserAgent       string             `bson:"user_agent,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
}

// Append inserts one audit entry.
func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	doc := mongoAuditEntry{
		AdminID:         entry.AdminID,
		AdminEmail:      entry.AdminEmail,
		Action:          string(entry.Action),
		TargetUserID:    entry.TargetUserID,
		TargetUserEmail: entry.TargetUserEmail,
		Metadata:        entry.Metadata,
		IPAddress:       entry.IPAddress,
		UserAgent:       entry.UserAgent,
		CreatedAt:       entry.CreatedAt,
	}

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

// List returns one page of the trail, newest first, optionally filtered by
// action kind.
func (r *AuditRepository) List(ctx context.Context, filter ports.ListAuditFilter) ([]*domain.AuditEntry, int64, error) {
	query := bson.M{}
	if filter.Action != "" {
		query["action"] = string(filter.Action)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*domain.AuditEntry
	for cursor.Next(ctx) {
		var doc mongoAuditEntry
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode audit entry: %w", err)
		}
		entries = append(entries, &domain.AuditEntry{
			ID:              doc.ID.Hex(),
			AdminID:         doc.AdminID,
			AdminEmail:      doc.AdminEmail,
			Action:          domain.AuditAction(doc.Action),
			TargetUserID:    doc.TargetUserID,
			TargetUserEmail: doc.TargetUserEmail,
			Metadata:        doc.Metadata,
			IPAddress:       doc.IPAddress,
			UserAgent:       doc.UserAgent,
			CreatedAt:       doc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, total, nil
}

// EnsureIndexes creates the indexes backing filtered, paginated retrieval.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "action", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "admin_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "target_user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
