package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/staffhub-id/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetByEmployeeTypeYear implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, leave_type_id, year,
			   opening, accrued, used, carried_over, closing,
			   updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.Opening, &b.Accrued, &b.Used, &b.CarriedOver, &b.Closing,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return b, nil
}

// GetByEmployeeYear implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, leave_type_id, year,
			   opening, accrued, used, carried_over, closing,
			   updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type_id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.Opening, &b.Accrued, &b.Used, &b.CarriedOver, &b.Closing,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// GetForUpdate implements leave.LeaveBalanceRepository. The row lock is only
// meaningful inside a transaction carried by the context.
func (l *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, leave_type_id, year,
			   opening, accrued, used, carried_over, closing,
			   updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
		FOR UPDATE
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.Opening, &b.Accrued, &b.Used, &b.CarriedOver, &b.Closing,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, false, nil
		}
		return leave.LeaveBalance{}, false, err
	}

	return b, true, nil
}

// Upsert implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type_id, year,
			opening, accrued, used, carried_over, closing,
			updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6, $7, $8,
			NOW()
		)
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE SET
			opening = EXCLUDED.opening,
			accrued = EXCLUDED.accrued,
			used = EXCLUDED.used,
			carried_over = EXCLUDED.carried_over,
			closing = EXCLUDED.closing,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.Opening, balance.Accrued, balance.Used, balance.CarriedOver, balance.Closing,
	).Scan(&balance.ID, &balance.UpdatedAt)

	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}
