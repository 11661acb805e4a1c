package domain

import "time"

// Role enumerates the two account roles the dashboard distinguishes.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleStaff:
		return Role(raw), nil
	default:
		return "", NewError(ErrCodeInvalid, "unknown user role")
	}
}

// User represents an account that can sign in to the dashboard.
//
// BanDuration carries the suspension marker: empty means active, any other
// value means the account is blocked.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	BanDuration  string    `json:"ban_duration,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsSuspended reports whether the account is currently blocked.
func (u *User) IsSuspended() bool {
	return u != nil && u.BanDuration != ""
}

// IsAdmin reports whether the account holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
