package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffhub-id/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type_id,
	lr.start_date, lr.end_date, lr.days,
	lr.reason, lr.status, lr.approval_level,
	lr.approver_id, lr.approver_note, lr.approval_chain,
	lr.decided_at, lr.attachment_id, lr.request_number,
	lr.created_at, lr.updated_at,
	lt.name, e.full_name
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID,
		&lr.StartDate, &lr.EndDate, &lr.Days,
		&lr.Reason, &lr.Status, &lr.ApprovalLevel,
		&lr.ApproverID, &lr.ApproverNote, &lr.Chain,
		&lr.DecidedAt, &lr.AttachmentID, &lr.RequestNumber,
		&lr.CreatedAt, &lr.UpdatedAt,
		&lr.LeaveTypeName, &lr.EmployeeName,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id,
			start_date, end_date, days,
			reason, status, approval_level,
			approver_id, approver_note, approval_chain,
			decided_at, attachment_id, request_number,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5,
			$6, $7, $8,
			$9, $10, $11,
			$12, $13, $14,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.Days,
		request.Reason, request.Status, request.ApprovalLevel,
		request.ApproverID, request.ApproverNote, request.Chain,
		request.DecidedAt, request.AttachmentID, request.RequestNumber,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lr.leave_type_id = lt.id
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`, leaveRequestColumns)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return lr, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE lr.employee_id = $1"
	args := []interface{}{employeeID}
	argIndex := 2

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND lr.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.LeaveTypeID != nil {
		whereClause += fmt.Sprintf(" AND lr.leave_type_id = $%d", argIndex)
		args = append(args, *filter.LeaveTypeID)
		argIndex++
	}
	if filter.Year != nil {
		whereClause += fmt.Sprintf(" AND EXTRACT(YEAR FROM lr.start_date) = $%d", argIndex)
		args = append(args, *filter.Year)
		argIndex++
	}
	if filter.ApprovalLevel != nil {
		whereClause += fmt.Sprintf(" AND lr.approval_level = $%d", argIndex)
		args = append(args, *filter.ApprovalLevel)
		argIndex++
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM leave_requests lr
		%s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lr.leave_type_id = lt.id
		INNER JOIN employees e ON lr.employee_id = e.id
		%s
		ORDER BY lr.created_at DESC
	`, leaveRequestColumns, whereClause)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
		if filter.Page > 1 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, (filter.Page-1)*filter.Limit)
		}
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}

	return requests, total, rows.Err()
}

// ListPending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context, level int, departmentIDs []string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE lr.status = 'pending'"
	args := []interface{}{}
	argIndex := 1

	if level > 0 {
		whereClause += fmt.Sprintf(" AND lr.approval_level = $%d", argIndex)
		args = append(args, level)
		argIndex++
	}
	if len(departmentIDs) > 0 {
		whereClause += fmt.Sprintf(" AND e.department_id = ANY($%d)", argIndex)
		args = append(args, departmentIDs)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lr.leave_type_id = lt.id
		INNER JOIN employees e ON lr.employee_id = e.id
		%s
		ORDER BY lr.created_at ASC
	`, leaveRequestColumns, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET end_date = $1, days = $2, status = $3, approval_level = $4,
			approver_id = $5, approver_note = $6, approval_chain = $7,
			decided_at = $8, updated_at = NOW()
		WHERE id = $9
	`

	commandTag, err := q.Exec(ctx, query,
		request.EndDate, request.Days, request.Status, request.ApprovalLevel,
		request.ApproverID, request.ApproverNote, request.Chain,
		request.DecidedAt, request.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// AcquireEmployeeLock implements leave.LeaveRequestRepository. The advisory
// lock is transaction-scoped (pg_advisory_xact_lock) and keyed on a hash of
// the employee id, so two submissions for the same employee cannot both read
// the overlap check before either insert commits.
func (r *leaveRequestRepositoryImpl) AcquireEmployeeLock(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, employeeID); err != nil {
		return fmt.Errorf("acquire employee lock: %w", err)
	}
	return nil
}

// HasOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// SumApprovedDays implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND status = 'approved'
		  AND EXTRACT(YEAR FROM start_date) = $3
	`

	var total int
	if err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

// CountByCategory implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountByCategory(ctx context.Context, employeeID string, code leave.SpecialCode) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1
		  AND lr.status IN ('pending', 'approved')
		  AND lt.special_code = $2
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, string(code)).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// CountByType implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountByType(ctx context.Context, leaveTypeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE leave_type_id = $1
	`

	var count int64
	if err := q.QueryRow(ctx, query, leaveTypeID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
