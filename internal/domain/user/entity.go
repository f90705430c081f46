package user

import "time"

type Role string

const (
	RoleHR       Role = "hr"       // HR administrator - finalizes requests, manages types/holidays/balances
	RoleManager  Role = "manager"  // Department manager - first-level approver
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeID *string
}

// IsHR checks if user holds the HR capability
func (u *User) IsHR() bool {
	return u.Role == RoleHR
}

// IsManager checks if user is a manager or HR
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleHR
}

// Actor identifies the authenticated caller of a state transition. It is
// built from verified token claims, never from request payloads.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       Role
}
