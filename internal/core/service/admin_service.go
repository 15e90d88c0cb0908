package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/ports"
)

const (
	defaultUserPageLimit  = 10
	defaultAuditPageLimit = 20
	maxPageLimit          = 100
)

// AdminService implements the role-gated account transitions and the admin
// read surface. Each mutating transition and its audit append run inside one
// transaction, so a committed mutation always has its matching audit entry.
type AdminService struct {
	users  ports.UserRepository
	audit  ports.AuditRepository
	tx     ports.TxRunner
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, audit ports.AuditRepository, tx ports.TxRunner, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, audit: audit, tx: tx, logger: logger}
}

// requireAdmin fails closed when the actor is not an authenticated admin.
// The HTTP layer enforces this too; the service does not trust its callers.
func requireAdmin(actor domain.Identity) error {
	if actor.Kind != domain.IdentityAuthenticated {
		return domain.ErrAuthenticationRequired
	}
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// ListUsers returns a page of accounts. Soft-deleted accounts are excluded
// unless the filter opts in.
func (s *AdminService) ListUsers(ctx context.Context, actor domain.Identity, filter ports.ListUsersFilter) (*ports.UserListResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if filter.Role != "" && !domain.ValidRole(filter.Role) {
		return nil, domain.ErrInvalidRole
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, defaultUserPageLimit)

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.UserListResult{
		Users:      users,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// ChangeRole sets the target account's role and records the before/after
// values in the audit trail. An admin cannot strip their own admin role.
func (s *AdminService) ChangeRole(ctx context.Context, input ports.ChangeRoleInput) error {
	if err := requireAdmin(input.Actor); err != nil {
		return err
	}
	if !domain.ValidRole(input.NewRole) {
		return domain.ErrInvalidRole
	}
	if input.Actor.UserID == input.TargetID && input.NewRole != domain.RoleAdmin {
		return domain.ErrSelfRoleChange
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.users.FindByID(txCtx, input.TargetID)
		if err != nil {
			return err
		}

		oldRole := target.Role
		newRole := input.NewRole
		if err := s.users.Update(txCtx, target.ID, ports.UserUpdate{Role: &newRole}); err != nil {
			return err
		}

		entry := s.newAuditEntry(input.Actor, domain.AuditRoleChange, target, input.Request, map[string]any{
			"old_role": oldRole,
			"new_role": newRole,
		})
		if err := s.audit.Append(txCtx, entry); err != nil {
			return err
		}

		s.logger.Info().
			Str("admin_id", input.Actor.UserID).
			Str("target_id", target.ID).
			Str("old_role", oldRole).
			Str("new_role", newRole).
			Msg("role changed")
		return nil
	})
}

// SoftDelete marks the target account deleted. Admins cannot delete their
// own account, and an already-deleted account is rejected without mutation
// or audit entry.
func (s *AdminService) SoftDelete(ctx context.Context, input ports.TargetInput) error {
	if err := requireAdmin(input.Actor); err != nil {
		return err
	}
	if input.Actor.UserID == input.TargetID {
		return domain.ErrSelfDelete
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.users.FindByID(txCtx, input.TargetID)
		if err != nil {
			return err
		}
		if target.IsDeleted() {
			return domain.ErrUserAlreadyDeleted
		}

		now := time.Now().UTC()
		if err := s.users.Update(txCtx, target.ID, ports.UserUpdate{DeletedAt: &now}); err != nil {
			return err
		}

		entry := s.newAuditEntry(input.Actor, domain.AuditUserDelete, target, input.Request, map[string]any{
			"email": target.Email,
			"role":  target.Role,
		})
		if err := s.audit.Append(txCtx, entry); err != nil {
			return err
		}

		s.logger.Info().
			Str("admin_id", input.Actor.UserID).
			Str("target_id", target.ID).
			Msg("user soft-deleted")
		return nil
	})
}

// Restore clears the target account's deletion timestamp. Restoring an
// account that is not deleted is rejected.
func (s *AdminService) Restore(ctx context.Context, input ports.TargetInput) error {
	if err := requireAdmin(input.Actor); err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.users.FindByID(txCtx, input.TargetID)
		if err != nil {
			return err
		}
		if !target.IsDeleted() {
			return domain.ErrUserNotDeleted
		}

		if err := s.users.Update(txCtx, target.ID, ports.UserUpdate{ClearDeletedAt: true}); err != nil {
			return err
		}

		entry := s.newAuditEntry(input.Actor, domain.AuditUserRestore, target, input.Request, map[string]any{
			"email": target.Email,
			"role":  target.Role,
		})
		if err := s.audit.Append(txCtx, entry); err != nil {
			return err
		}

		s.logger.Info().
			Str("admin_id", input.Actor.UserID).
			Str("target_id", target.ID).
			Msg("user restored")
		return nil
	})
}

// ListAuditLogs returns a page of the audit trail, newest first.
func (s *AdminService) ListAuditLogs(ctx context.Context, actor domain.Identity, filter ports.ListAuditFilter) (*ports.AuditListResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if filter.Action != "" && !domain.ValidAuditAction(filter.Action) {
		return nil, domain.ErrInvalidAuditAction
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, defaultAuditPageLimit)

	logs, total, err := s.audit.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.AuditListResult{
		Logs:       logs,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Metrics aggregates the admin dashboard counters and the 30-day sign-up
// growth series.
func (s *AdminService) Metrics(ctx context.Context, actor domain.Identity) (*ports.DashboardMetrics, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	counts, err := s.users.DashboardCounts(ctx, now)
	if err != nil {
		return nil, err
	}
	growth, err := s.users.UserGrowth(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &ports.DashboardMetrics{
		DashboardCounts: *counts,
		RoleDistribution: map[string]int64{
			domain.RoleAdmin: counts.AdminCount,
			domain.RoleUser:  counts.UserCount,
			domain.RoleGuest: counts.GuestCount,
		},
		UserGrowth: growth,
	}, nil
}

func (s *AdminService) newAuditEntry(actor domain.Identity, action domain.AuditAction, target *domain.User, req ports.RequestMetadata, metadata map[string]any) *domain.AuditEntry {
	return &domain.AuditEntry{
		AdminID:         actor.UserID,
		AdminEmail:      actor.Email,
		Action:          action,
		TargetUserID:    target.ID,
		TargetUserEmail: target.Email,
		Metadata:        metadata,
		IPAddress:       req.IPAddress,
		UserAgent:       req.UserAgent,
		CreatedAt:       time.Now().UTC(),
	}
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
