package ports

import (
	"context"

	"github.com/signalist/signalist-api/internal/core/domain"
)

// RequestMetadata is best-effort context captured for audit entries. Either
// field may be empty; missing values are never fatal.
type RequestMetadata struct {
	IPAddress string
	UserAgent string
}

// ChangeRoleInput carries an admin role-change transition.
type ChangeRoleInput struct {
	Actor    domain.Identity
	TargetID string
	NewRole  string
	Request  RequestMetadata
}

// TargetInput carries an admin soft-delete or restore transition.
type TargetInput struct {
	Actor    domain.Identity
	TargetID string
	Request  RequestMetadata
}

// UserListResult is returned by ListUsers.
type UserListResult struct {
	Users      []*domain.User
	Total      int64
	Page       int
	TotalPages int
}

// AuditListResult is returned by ListAuditLogs.
type AuditListResult struct {
	Logs       []*domain.AuditEntry
	Total      int64
	Page       int
	TotalPages int
}

// DashboardMetrics aggregates the admin dashboard data.
type DashboardMetrics struct {
	DashboardCounts
	RoleDistribution map[string]int64 `json:"role_distribution"`
	UserGrowth       []GrowthPoint    `json:"user_growth"`
}

// AdminService defines the role-gated administrative use cases. Every
// mutating transition requires an authenticated admin actor and appends
// exactly one audit entry atomically with its account mutation.
type AdminService interface {
	ListUsers(ctx context.Context, actor domain.Identity, filter ListUsersFilter) (*UserListResult, error)
	ChangeRole(ctx context.Context, input ChangeRoleInput) error
	SoftDelete(ctx context.Context, input TargetInput) error
	Restore(ctx context.Context, input TargetInput) error
	ListAuditLogs(ctx context.Context, actor domain.Identity, filter ListAuditFilter) (*AuditListResult, error)
	Metrics(ctx context.Context, actor domain.Identity) (*DashboardMetrics, error)
}
