package department

import "time"

type Department struct {
	ID   string
	Name string
	// ManagerUserID is the user account of the department manager, if one
	// is assigned. A department without a manager skips the first approval
	// stage.
	ManagerUserID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasManager reports whether a first-level approver is assigned.
func (d Department) HasManager() bool {
	return d.ManagerUserID != nil && *d.ManagerUserID != ""
}
