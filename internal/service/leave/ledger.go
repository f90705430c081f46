package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/staffhub-id/leave-backend-go/internal/config"
	"github.com/staffhub-id/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-id/leave-backend-go/internal/domain/leave"
)

// Ledger maintains the per (employee, type, year) balance rows. Used and
// closing are never written directly: every mutation re-derives them, so
// replaying a recomputation is always safe.
type Ledger struct {
	balanceRepo  leave.LeaveBalanceRepository
	requestRepo  leave.LeaveRequestRepository
	typeRepo     leave.LeaveTypeRepository
	employeeRepo employee.EmployeeRepository
	policy       config.PolicyConfig
}

func NewLedger(
	balanceRepo leave.LeaveBalanceRepository,
	requestRepo leave.LeaveRequestRepository,
	typeRepo leave.LeaveTypeRepository,
	employeeRepo employee.EmployeeRepository,
	policy config.PolicyConfig,
) *Ledger {
	return &Ledger{
		balanceRepo:  balanceRepo,
		requestRepo:  requestRepo,
		typeRepo:     typeRepo,
		employeeRepo: employeeRepo,
		policy:       policy,
	}
}

// Recompute re-derives a balance row from its sources: used from approved
// requests, accrued from the quota resolver, opening and carried-over kept
// as stored. Creates the row when it does not exist yet. Must run inside
// the caller's transaction so the row lock covers the dependent write.
func (l *Ledger) Recompute(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	balance, found, err := l.balanceRepo.GetForUpdate(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to lock balance row: %w", err)
	}
	if !found {
		balance = leave.LeaveBalance{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			Year:        year,
		}
	}

	used, err := l.requestRepo.SumApprovedDays(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to sum approved days: %w", err)
	}

	accrued, err := l.resolveAccrued(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	balance.Accrued = accrued
	balance.Used = used
	balance.Closing = balance.ComputeClosing()

	saved, err := l.balanceRepo.Upsert(ctx, balance)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to upsert balance: %w", err)
	}
	return saved, nil
}

// Available reports how many days the employee may still consume this year
// without the balance going negative. It projects the row without writing:
// a missing row counts as zero opening and carry-over.
func (l *Ledger) Available(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	balance, err := l.balanceRepo.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
	if err != nil && err != leave.ErrBalanceNotFound {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	used, err := l.requestRepo.SumApprovedDays(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return 0, fmt.Errorf("failed to sum approved days: %w", err)
	}

	accrued, err := l.resolveAccrued(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return 0, err
	}

	balance.Accrued = accrued
	balance.Used = used
	closing := balance.ComputeClosing()
	if closing < 0 {
		return 0, nil
	}
	return closing, nil
}

// Adjust applies administrator overrides to the editable fields, then
// re-derives used and closing the same way Recompute does. Must run inside
// the caller's transaction.
func (l *Ledger) Adjust(ctx context.Context, req leave.AdjustBalanceRequest) (leave.LeaveBalance, error) {
	balance, found, err := l.balanceRepo.GetForUpdate(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to lock balance row: %w", err)
	}
	if !found {
		balance = leave.LeaveBalance{
			EmployeeID:  req.EmployeeID,
			LeaveTypeID: req.LeaveTypeID,
			Year:        req.Year,
		}
		// Seed accrued for a fresh row so a partial override does not
		// zero the entitlement.
		balance.Accrued, err = l.resolveAccrued(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
		if err != nil {
			return leave.LeaveBalance{}, err
		}
	}

	if req.Opening != nil {
		balance.Opening = *req.Opening
	}
	if req.Accrued != nil {
		balance.Accrued = *req.Accrued
	}
	if req.CarriedOver != nil {
		balance.CarriedOver = *req.CarriedOver
	}

	used, err := l.requestRepo.SumApprovedDays(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to sum approved days: %w", err)
	}
	balance.Used = used
	balance.Closing = balance.ComputeClosing()

	saved, err := l.balanceRepo.Upsert(ctx, balance)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to upsert balance: %w", err)
	}
	return saved, nil
}

func (l *Ledger) resolveAccrued(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	leaveType, err := l.typeRepo.GetByID(ctx, leaveTypeID)
	if err != nil {
		return 0, fmt.Errorf("failed to get leave type: %w", err)
	}

	var hireDate *time.Time
	emp, err := l.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if err != employee.ErrEmployeeNotFound {
			return 0, fmt.Errorf("failed to get employee: %w", err)
		}
	} else if !emp.HireDate.IsZero() {
		hireDate = &emp.HireDate
	}

	return ResolveQuota(leaveType, hireDate, year, l.policy), nil
}
