package domain

import (
	"errors"
	"time"
)

const (
	RoleGuest = "guest"
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidRole = errors.New("invalid role")
var ErrSelfRoleChange = errors.New("cannot remove your own admin privileges")
var ErrSelfDelete = errors.New("cannot delete your own account")
var ErrUserAlreadyDeleted = errors.New("user is already deleted")
var ErrUserNotDeleted = errors.New("user is not deleted")

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleGuest || role == RoleUser || role == RoleAdmin
}

// User is an account record. DeletedAt implements soft delete: a set
// timestamp excludes the account from default queries while keeping the
// record restorable.
type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"email_verified"`
	Name          string     `json:"name,omitempty"`
	Image         string     `json:"image,omitempty"`
	Role          string     `json:"role"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// IsDeleted reports whether the account has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
