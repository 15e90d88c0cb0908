package domain

import (
	"errors"
	"time"
)

// AuditAction identifies the kind of administrative transition recorded in
// the audit trail.
type AuditAction string

const (
	AuditRoleChange  AuditAction = "role_change"
	AuditUserDelete  AuditAction = "user_delete"
	AuditUserRestore AuditAction = "user_restore"
)

var ErrInvalidAuditAction = errors.New("invalid audit action")

// ValidAuditAction reports whether action is a known audit action kind.
func ValidAuditAction(action AuditAction) bool {
	switch action {
	case AuditRoleChange, AuditUserDelete, AuditUserRestore:
		return true
	}
	return false
}

// AuditEntry is one immutable record in the administrative audit trail.
// Entries are appended exactly once per successful admin mutation and never
// updated or deleted. IPAddress and UserAgent are best-effort request
// metadata; missing values are tolerated.
type AuditEntry struct {
	ID              string         `json:"id"`
	AdminID         string         `json:"admin_id"`
	AdminEmail      string         `json:"admin_email"`
	Action          AuditAction    `json:"action"`
	TargetUserID    string         `json:"target_user_id,omitempty"`
	TargetUserEmail string         `json:"target_user_email,omitempty"`
	Metadata        map[string]any `json:"metadata"`
	IPAddress       string         `json:"ip_address,omitempty"`
	UserAgent       string         `json:"user_agent,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}
