package leave

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SpecialCode identifies a leave category carrying eligibility and duration
// rules beyond the generic quota check. The zero value means no category rule.
type SpecialCode string

const (
	SpecialNone        SpecialCode = ""
	SpecialSickShort   SpecialCode = "SICK_SHORT"
	SpecialSickLong    SpecialCode = "SICK_LONG"
	SpecialHajj        SpecialCode = "HAJJ"
	SpecialMaternity   SpecialCode = "MATERNITY"
	SpecialMarriage    SpecialCode = "MARRIAGE"
	SpecialBereavement SpecialCode = "BEREAVEMENT"
	SpecialPaternity   SpecialCode = "PATERNITY"
)

// Valid reports whether the code is a known category.
func (c SpecialCode) Valid() bool {
	switch c {
	case SpecialNone, SpecialSickShort, SpecialSickLong, SpecialHajj,
		SpecialMaternity, SpecialMarriage, SpecialBereavement, SpecialPaternity:
		return true
	}
	return false
}

// RequiresAttachment reports whether submissions of this category must carry
// a supporting document. Only the sick categories do.
func (c SpecialCode) RequiresAttachment() bool {
	return c == SpecialSickShort || c == SpecialSickLong
}

// LeaveType entity
type LeaveType struct {
	ID               string
	Name             string
	IsPaid           bool
	RequiresApproval bool
	// AnnualQuota is the flat entitlement used when the type is not
	// tenure-tiered, or when the employee's hire date is unknown.
	AnnualQuota   int
	AllowNegative bool
	IsAnnual      bool
	SpecialCode   SpecialCode
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// Approval levels gate which actor may act on a pending request.
const (
	ApprovalLevelManager = 1
	ApprovalLevelHR      = 2
)

type ChainAction string

const (
	ChainActionSubmit  ChainAction = "submit"
	ChainActionApprove ChainAction = "approve"
	ChainActionReject  ChainAction = "reject"
	ChainActionShorten ChainAction = "shorten"
)

// ApprovalChainEntry is one append-only audit record on a request.
// Entries are never mutated after append.
type ApprovalChainEntry struct {
	By     string      `json:"by"`
	Role   string      `json:"role"`
	Action ChainAction `json:"action"`
	Note   string      `json:"note,omitempty"`
	At     time.Time   `json:"at"`
}

// ApprovalChain is the ordered audit log of a request. It is a typed
// in-memory structure everywhere and serializes to JSON only at the
// storage boundary.
type ApprovalChain []ApprovalChainEntry

// Value implements driver.Valuer for database storage
func (c ApprovalChain) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(ApprovalChain{})
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for database retrieval
func (c *ApprovalChain) Scan(value interface{}) error {
	if value == nil {
		*c = ApprovalChain{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ApprovalChain: invalid type")
	}

	return json.Unmarshal(bytes, c)
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	// Days is the business-day count of the range, clamped to a minimum
	// of one at submission and shortening time.
	Days int

	Reason        string
	Status        LeaveRequestStatus
	ApprovalLevel int
	ApproverID    *string
	ApproverNote  *string
	Chain         ApprovalChain
	DecidedAt     *time.Time
	AttachmentID  *string
	RequestNumber string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	EmployeeName  *string
}

// IsTerminal reports whether the request reached a final status.
func (r *LeaveRequest) IsTerminal() bool {
	return r.Status == LeaveRequestStatusApproved || r.Status == LeaveRequestStatusRejected
}

// Overlaps reports whether the request's inclusive date range intersects
// [start, end].
func (r *LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !start.After(r.EndDate)
}

// LeaveBalance is one ledger row per (employee, type, year). It is a
// materialized projection: Used is always re-derived from approved requests,
// while Opening and CarriedOver are administrator-editable and preserved
// across recomputation.
type LeaveBalance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	Opening     int
	Accrued     int
	Used        int
	CarriedOver int
	Closing     int

	UpdatedAt time.Time
}

// ComputeClosing derives the closing balance from the other fields.
func (b LeaveBalance) ComputeClosing() int {
	return b.Opening + b.Accrued + b.CarriedOver - b.Used
}
