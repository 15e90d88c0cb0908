package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/ports"
)

// The auth collaborator owns account creation and writes into this
// collection; this service reads it and applies admin transitions.
const userCollection = "user"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	EmailVerified bool               `bson:"email_verified"`
	Name          string             `bson:"name,omitempty"`
	Image         string             `bson:"image,omitempty"`
	Role          string             `bson:"role"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
	DeletedAt     *time.Time         `bson:"deleted_at,omitempty"`
	LastLoginAt   *time.Time         `bson:"last_login_at,omitempty"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:            mu.ID.Hex(),
		Email:         mu.Email,
		EmailVerified: mu.EmailVerified,
		Name:          mu.Name,
		Image:         mu.Image,
		Role:          mu.Role,
		CreatedAt:     mu.CreatedAt,
		UpdatedAt:     mu.UpdatedAt,
		DeletedAt:     mu.DeletedAt,
		LastLoginAt:   mu.LastLoginAt,
	}
}

// FindByID looks an account up by its hex object id. The lookup order is
// fixed: a valid hex id queries _id; anything else is not found. There is
// deliberately no fallback to email or raw identifiers.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// List returns one page of accounts, newest first. Soft-deleted accounts are
// excluded unless the filter opts in.
func (r *UserRepository) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	query := bson.M{}
	if !filter.IncludeDeleted {
		query["deleted_at"] = nil
	}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"email": regex},
			bson.M{"name": regex},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}
	return users, total, nil
}

// Update applies an admin transition to the account document.
func (r *UserRepository) Update(ctx context.Context, id string, update ports.UserUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	if update.Role != nil {
		set["role"] = *update.Role
	}
	if update.ClearDeletedAt {
		unset["deleted_at"] = ""
	} else if update.DeletedAt != nil {
		set["deleted_at"] = *update.DeletedAt
	}

	ops := bson.M{"$set": set}
	if len(unset) > 0 {
		ops["$unset"] = unset
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, ops)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DashboardCounts aggregates the account counters for the admin dashboard,
// always excluding soft-deleted accounts.
func (r *UserRepository) DashboardCounts(ctx context.Context, now time.Time) (*ports.DashboardCounts, error) {
	active := bson.M{"deleted_at": nil}
	count := func(extra bson.M) (int64, error) {
		query := bson.M{"deleted_at": nil}
		for k, v := range extra {
			query[k] = v
		}
		return r.coll.CountDocuments(ctx, query)
	}

	counts := &ports.DashboardCounts{}
	var err error
	if counts.TotalUsers, err = r.coll.CountDocuments(ctx, active); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if counts.ActiveUsers, err = count(bson.M{"last_login_at": bson.M{"$gte": now.AddDate(0, 0, -30)}}); err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}
	if counts.NewUsers7Days, err = count(bson.M{"created_at": bson.M{"$gte": now.AddDate(0, 0, -7)}}); err != nil {
		return nil, fmt.Errorf("count new users: %w", err)
	}
	if counts.NewUsers30Days, err = count(bson.M{"created_at": bson.M{"$gte": now.AddDate(0, 0, -30)}}); err != nil {
		return nil, fmt.Errorf("count new users: %w", err)
	}
	if counts.AdminCount, err = count(bson.M{"role": domain.RoleAdmin}); err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	if counts.UserCount, err = count(bson.M{"role": domain.RoleUser}); err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	if counts.GuestCount, err = count(bson.M{"role": domain.RoleGuest}); err != nil {
		return nil, fmt.Errorf("count guests: %w", err)
	}
	return counts, nil
}

// UserGrowth groups new sign-ups per day since the given time.
func (r *UserRepository) UserGrowth(ctx context.Context, since time.Time) ([]ports.GrowthPoint, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"deleted_at": nil,
			"created_at": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$created_at",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate user growth: %w", err)
	}
	defer cursor.Close(ctx)

	var points []ports.GrowthPoint
	for cursor.Next(ctx) {
		var row struct {
			Date  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode growth point: %w", err)
		}
		points = append(points, ports.GrowthPoint{Date: row.Date, Count: row.Count})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate growth points: %w", err)
	}
	return points, nil
}

// EnsureIndexes creates the indexes backing admin queries.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "deleted_at", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "deleted_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
