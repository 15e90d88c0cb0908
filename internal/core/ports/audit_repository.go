package ports

import (
	"context"

	"github.com/signalist/signalist-api/internal/core/domain"
)

// ListAuditFilter selects and pages the audit trail listing.
type ListAuditFilter struct {
	Action domain.AuditAction
	Page   int
	Limit  int
}

// AuditRepository is the persistence port for the append-only audit trail.
// Entries are never updated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, filter ListAuditFilter) ([]*domain.AuditEntry, int64, error)
}
