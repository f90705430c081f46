package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest) error
	Delete(ctx context.Context, id string) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	// ListPending returns pending requests at the given approval level
	// (0 means any level), optionally restricted to a set of departments
	// (manager inbox).
	ListPending(ctx context.Context, level int, departmentIDs []string) ([]LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error

	// AcquireEmployeeLock takes a transaction-scoped lock on the employee
	// so that concurrent submissions serialize. Must be called inside a
	// transaction, before HasOverlapping.
	AcquireEmployeeLock(ctx context.Context, employeeID string) error
	// HasOverlapping reports whether a pending or approved request of the
	// employee intersects the inclusive range [start, end].
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// SumApprovedDays totals the days of approved requests for the
	// employee and type whose start date falls in the given year.
	SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error)
	// CountByCategory counts pending or approved requests of the employee
	// whose leave type carries the given special code.
	CountByCategory(ctx context.Context, employeeID string, code SpecialCode) (int, error)
	// CountByType counts all requests referencing a leave type.
	CountByType(ctx context.Context, leaveTypeID string) (int64, error)
}

// LeaveBalanceRepository - interface for leave_balances table,
// unique on (employee_id, leave_type_id, year)
type LeaveBalanceRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	// GetForUpdate locks the balance row for the enclosing transaction,
	// returning a zero-valued row (found=false) when none exists yet.
	GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (balance LeaveBalance, found bool, err error)
	Upsert(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
}
