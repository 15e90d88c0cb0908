package handler

import (
	"time"

	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/ports"
)

// --- Request types ---

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=guest user admin"`
}

type listUsersQuery struct {
	Page           int    `query:"page"`
	Limit          int    `query:"limit"`
	Search         string `query:"search"`
	Role           string `query:"role"`
	IncludeDeleted bool   `query:"include_deleted"`
}

type listAuditQuery struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Action string `query:"action"`
}

// --- Response types ---

// Response-only types owned by the transport layer, kept separate from the
// domain entities so the JSON contract is not coupled to internal changes.

type userResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"email_verified"`
	Name          string     `json:"name,omitempty"`
	Role          string     `json:"role"`
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

type userListResponse struct {
	Users      []userResponse `json:"users"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

type auditEntryResponse struct {
	ID              string         `json:"id"`
	AdminID         string         `json:"admin_id"`
	AdminEmail      string         `json:"admin_email"`
	Action          string         `json:"action"`
	TargetUserID    string         `json:"target_user_id,omitempty"`
	TargetUserEmail string         `json:"target_user_email,omitempty"`
	Metadata        map[string]any `json:"metadata"`
	IPAddress       string         `json:"ip_address,omitempty"`
	UserAgent       string         `json:"user_agent,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

type auditListResponse struct {
	Logs       []auditEntryResponse `json:"logs"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Name:          u.Name,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
		DeletedAt:     u.DeletedAt,
		LastLoginAt:   u.LastLoginAt,
	}
}

func toAuditEntryResponse(e *domain.AuditEntry) auditEntryResponse {
	return auditEntryResponse{
		ID:              e.ID,
		AdminID:         e.AdminID,
		AdminEmail:      e.AdminEmail,
		Action:          string(e.Action),
		TargetUserID:    e.TargetUserID,
		TargetUserEmail: e.TargetUserEmail,
		Metadata:        e.Metadata,
		IPAddress:       e.IPAddress,
		UserAgent:       e.UserAgent,
		CreatedAt:       e.CreatedAt,
	}
}

func toUserListResponse(r *ports.UserListResult) userListResponse {
	users := make([]userResponse, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, toUserResponse(u))
	}
	return userListResponse{
		Users:      users,
		Total:      r.Total,
		Page:       r.Page,
		TotalPages: r.TotalPages,
	}
}

func toAuditListResponse(r *ports.AuditListResult) auditListResponse {
	logs := make([]auditEntryResponse, 0, len(r.Logs))
	for _, e := range r.Logs {
		logs = append(logs, toAuditEntryResponse(e))
	}
	return auditListResponse{
		Logs:       logs,
		Total:      r.Total,
		Page:       r.Page,
		TotalPages: r.TotalPages,
	}
}
