package ports

import (
	"context"
	"time"

	"github.com/signalist/signalist-api/internal/core/domain"
)

// ListUsersFilter selects and pages the admin user listing. Soft-deleted
// accounts are excluded unless IncludeDeleted is set.
type ListUsersFilter struct {
	Search         string
	Role           string
	IncludeDeleted bool
	Page           int
	Limit          int
}

// UserUpdate carries the mutable fields an admin transition may touch.
// Nil fields are left unchanged; ClearDeletedAt wins over DeletedAt.
type UserUpdate struct {
	Role           *string
	DeletedAt      *time.Time
	ClearDeletedAt bool
}

// GrowthPoint is one day's worth of new sign-ups.
type GrowthPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// DashboardCounts aggregates the account counters shown on the admin
// dashboard. All counts exclude soft-deleted accounts.
type DashboardCounts struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	NewUsers7Days int64 `json:"new_users_7_days"`
	NewUsers30Days int64 `json:"new_users_30_days"`
	AdminCount    int64 `json:"admin_count"`
	UserCount     int64 `json:"user_count"`
	GuestCount    int64 `json:"guest_count"`
}

// UserRepository is the persistence port for account records.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, id string, update UserUpdate) error
	DashboardCounts(ctx context.Context, now time.Time) (*DashboardCounts, error)
	UserGrowth(ctx context.Context, since time.Time) ([]GrowthPoint, error)
}
