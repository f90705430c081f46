package leave

import (
	"time"

	"github.com/staffhub-id/leave-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	LeaveTypeID  string  `json:"leave_type_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	AttachmentID *string `json:"attachment_id,omitempty"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecisionRequest struct {
	RequestID string `json:"request_id"`
	Note      string `json:"note,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShortenLeaveRequest struct {
	RequestID    string `json:"request_id"`
	ActualReturn string `json:"actual_return"`
	Note         string `json:"note,omitempty"`
}

func (r *ShortenLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if validator.IsEmpty(r.ActualReturn) {
		errs = append(errs, validator.ValidationError{
			Field:   "actual_return",
			Message: "actual_return is required",
		})
	} else if _, ok := validator.IsValidDate(r.ActualReturn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "actual_return",
			Message: "actual_return must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateLeaveTypeRequest struct {
	Name             string `json:"leave_type_name"`
	IsPaid           bool   `json:"is_paid"`
	RequiresApproval bool   `json:"requires_approval"`
	AnnualQuota      int    `json:"annual_quota"`
	AllowNegative    bool   `json:"allow_negative"`
	IsAnnual         bool   `json:"is_annual"`
	SpecialCode      string `json:"special_code,omitempty"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name must not exceed 255 characters",
		})
	}

	if r.AnnualQuota < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_quota",
			Message: "annual_quota must not be negative",
		})
	}

	if !SpecialCode(r.SpecialCode).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "special_code",
			Message: "special_code is not a known category",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveTypeRequest struct {
	ID               string  `json:"leave_type_id"`
	Name             *string `json:"leave_type_name,omitempty"`
	IsPaid           *bool   `json:"is_paid,omitempty"`
	RequiresApproval *bool   `json:"requires_approval,omitempty"`
	AnnualQuota      *int    `json:"annual_quota,omitempty"`
	AllowNegative    *bool   `json:"allow_negative,omitempty"`
	IsAnnual         *bool   `json:"is_annual,omitempty"`
	Active           *bool   `json:"active,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type_name",
				Message: "leave_type_name must not be empty",
			})
		}
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type_name",
				Message: "leave_type_name must not exceed 255 characters",
			})
		}
	}

	if r.AnnualQuota != nil && *r.AnnualQuota < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_quota",
			Message: "annual_quota must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AdjustBalanceRequest is the administrator override path. It never sets
// used or closing directly; those are re-derived after the write.
type AdjustBalanceRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	Year        int    `json:"year"`
	Opening     *int   `json:"opening,omitempty"`
	Accrued     *int   `json:"accrued,omitempty"`
	CarriedOver *int   `json:"carried_over,omitempty"`
}

func (r *AdjustBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if r.Year <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive integer",
		})
	}

	if r.Opening == nil && r.Accrued == nil && r.CarriedOver == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "adjustment",
			Message: "at least one of opening, accrued, carried_over is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveRequestFilter narrows request listings.
type LeaveRequestFilter struct {
	Status        *string
	LeaveTypeID   *string
	Year          *int
	ApprovalLevel *int
	Page          int
	Limit         int
}

type LeaveRequestResponse struct {
	ID            string               `json:"id"`
	RequestNumber string               `json:"request_number"`
	EmployeeID    string               `json:"employee_id"`
	EmployeeName  *string              `json:"employee_name,omitempty"`
	LeaveTypeID   string               `json:"leave_type_id"`
	LeaveTypeName *string              `json:"leave_type_name,omitempty"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	Days          int                  `json:"days"`
	Reason        string               `json:"reason"`
	Status        LeaveRequestStatus   `json:"status"`
	ApprovalLevel int                  `json:"approval_level"`
	ApproverNote  *string              `json:"approver_note,omitempty"`
	Chain         []ApprovalChainEntry `json:"approval_chain"`
	DecidedAt     *time.Time           `json:"decided_at,omitempty"`
	AttachmentID  *string              `json:"attachment_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func ToRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:            r.ID,
		RequestNumber: r.RequestNumber,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		Days:          r.Days,
		Reason:        r.Reason,
		Status:        r.Status,
		ApprovalLevel: r.ApprovalLevel,
		ApproverNote:  r.ApproverNote,
		Chain:         r.Chain,
		DecidedAt:     r.DecidedAt,
		AttachmentID:  r.AttachmentID,
		CreatedAt:     r.CreatedAt,
	}
}

type LeaveBalanceResponse struct {
	EmployeeID    string `json:"employee_id"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	Year          int    `json:"year"`
	Opening       int    `json:"opening"`
	Accrued       int    `json:"accrued"`
	Used          int    `json:"used"`
	CarriedOver   int    `json:"carried_over"`
	Closing       int    `json:"closing"`
	Available     int    `json:"available"`
}

type ListLeaveRequestResponse struct {
	Requests []LeaveRequestResponse `json:"requests"`
	Total    int64                  `json:"total"`
}
